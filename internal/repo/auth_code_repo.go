package repo

import (
	"context"
	"time"

	"github.com/dushixiang/pipvault/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewAuthCodeRepo(db *gorm.DB) *AuthCodeRepo {
	return &AuthCodeRepo{
		Repository: orz.NewRepository[models.AuthCode, string](db),
	}
}

type AuthCodeRepo struct {
	orz.Repository[models.AuthCode, string]
}

// MarkUsed 标记已使用，返回值为 false 表示已被使用过
func (r AuthCodeRepo) MarkUsed(ctx context.Context, id string) (bool, error) {
	tx := r.GetDB(ctx).Table(r.GetTableName()).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", time.Now())
	return tx.RowsAffected == 1, tx.Error
}

func (r AuthCodeRepo) DeleteByUserId(ctx context.Context, userId string) error {
	return r.GetDB(ctx).
		Where("user_id = ?", userId).
		Delete(&models.AuthCode{}).Error
}

func (r AuthCodeRepo) FindByCode(ctx context.Context, code string) (models.AuthCode, error) {
	var authCode models.AuthCode
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Where("id = ?", code).
		First(&authCode).Error
	return authCode, err
}
