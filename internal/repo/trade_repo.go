package repo

import (
	"context"
	"time"

	"github.com/dushixiang/pipvault/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewTradeRepo(db *gorm.DB) *TradeRepo {
	return &TradeRepo{
		Repository: orz.NewRepository[models.Trade, string](db),
	}
}

type TradeRepo struct {
	orz.Repository[models.Trade, string]
}

// FindByUserId 获取用户全部交易，按开仓时间倒序
func (r TradeRepo) FindByUserId(ctx context.Context, userId string) ([]models.Trade, error) {
	var trades []models.Trade
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Where("user_id = ?", userId).
		Order("date DESC").
		Find(&trades).Error
	return trades, err
}

// FindByIdAndUserId 只返回属于该用户的交易
func (r TradeRepo) FindByIdAndUserId(ctx context.Context, id, userId string) (models.Trade, error) {
	var trade models.Trade
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Where("id = ? AND user_id = ?", id, userId).
		First(&trade).Error
	return trade, err
}

func (r TradeRepo) DeleteByIdAndUserId(ctx context.Context, id, userId string) (int64, error) {
	tx := r.GetDB(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&models.Trade{})
	return tx.RowsAffected, tx.Error
}

// DeleteByUserId 清空用户全部交易
func (r TradeRepo) DeleteByUserId(ctx context.Context, userId string) (int64, error) {
	tx := r.GetDB(ctx).
		Where("user_id = ?", userId).
		Delete(&models.Trade{})
	return tx.RowsAffected, tx.Error
}

// FindByUserIdBetween 时间窗口 [from, to)
func (r TradeRepo) FindByUserIdBetween(ctx context.Context, userId string, from, to time.Time) ([]models.Trade, error) {
	var trades []models.Trade
	err := r.GetDB(ctx).Table(r.GetTableName()).
		Where("user_id = ? AND date >= ? AND date < ?", userId, from, to).
		Order("date ASC").
		Find(&trades).Error
	return trades, err
}
