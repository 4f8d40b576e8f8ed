//go:build wireinject
// +build wireinject

package internal

import (
	"net/http"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dushixiang/pipvault/internal/config"
	"github.com/dushixiang/pipvault/internal/handler"
	"github.com/dushixiang/pipvault/internal/service"
	"github.com/dushixiang/pipvault/internal/telegram"
)

const telegramHTTPTimeout = 10 * time.Second

var (
	handlerSet = wire.NewSet(
		handler.NewAuthHandler,
		handler.NewProfileHandler,
		handler.NewTradeHandler,
		handler.NewStatsHandler,
		handler.NewAdminHandler,
	)

	serviceSet = wire.NewSet(
		service.NewProfileService,
		service.NewAuthService,
		service.NewTradeService,
		service.NewStatsService,
		service.NewExportService,
		service.NewAdminService,
		service.NewDigestService,
	)
)

// InitializeApp 初始化应用
func InitializeApp(logger *zap.Logger, db *gorm.DB, conf *config.Config) (*AppComponents, error) {
	wire.Build(
		handlerSet,
		serviceSet,
		provideTelegram,
		wire.Struct(new(AppComponents), "*"),
	)
	return nil, nil
}

// provideTelegram provides telegram instance
func provideTelegram(logger *zap.Logger, conf *config.Config) *telegram.Telegram {
	if !conf.Telegram.Enabled {
		return nil
	}

	httpClient := &http.Client{Timeout: telegramHTTPTimeout}

	tg, err := telegram.NewTelegram(logger, telegram.Settings{
		Token:  conf.Telegram.Token,
		Client: httpClient,
	})
	if err != nil {
		logger.Error("failed to init telegram", zap.Error(err))
		return nil
	}

	return tg
}
