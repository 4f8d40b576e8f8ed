package repo

import (
	"context"
	"time"

	"github.com/dushixiang/pipvault/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{
		Repository: orz.NewRepository[models.User, string](db),
	}
}

type UserRepo struct {
	orz.Repository[models.User, string]
}

// FindByEmail 根据邮箱查找用户
func (r UserRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Where("email = ?", email).
		First(&user).Error
	return user, err
}

// UpdateLastLogin 更新最后登录信息
func (r UserRepo) UpdateLastLogin(ctx context.Context, id string, ip string) error {
	return r.GetDB(ctx).Table(r.GetTableName()).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": time.Now(),
			"last_login_ip": ip,
		}).Error
}

// UpdatePassword 更新密码
func (r UserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return r.GetDB(ctx).Table(r.GetTableName()).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r UserRepo) FindByUserId(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Where("id = ?", id).
		First(&user).Error
	return user, err
}

func (r UserRepo) FindByIds(ctx context.Context, ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Where("id IN ?", ids).
		Find(&users).Error
	return users, err
}
