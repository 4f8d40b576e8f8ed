package repo

import (
	"context"

	"github.com/dushixiang/pipvault/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{
		Repository: orz.NewRepository[models.Profile, string](db),
	}
}

type ProfileRepo struct {
	orz.Repository[models.Profile, string]
}

// FindRecent 最近注册的用户
func (r ProfileRepo) FindRecent(ctx context.Context, limit int) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

// FindDigestSubscribers 开启周报且绑定了 Telegram 的用户
func (r ProfileRepo) FindDigestSubscribers(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Where("digest_enabled = ? AND telegram_chat_id <> ''", true).
		Find(&profiles).Error
	return profiles, err
}

func (r ProfileRepo) FindByUserId(ctx context.Context, userId string) (models.Profile, error) {
	var profile models.Profile
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Where("id = ?", userId).
		First(&profile).Error
	return profile, err
}
