package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dushixiang/pipvault/internal/config"
	"github.com/dushixiang/pipvault/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	conf     *config.Config
	profiles *ProfileService
	auth     *AuthService
	trades   *TradeService
	stats    *StatsService
	export   *ExportService
	admin    *AdminService
	digest   *DigestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "pipvault.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.User{}, models.AuthCode{}, models.Profile{}, models.Trade{}))

	conf := config.Default()
	conf.Auth.JwtSecret = "test-secret"
	conf.Auth.AdminEmails = []string{"admin@pipvault.test"}

	log := zap.NewNop()
	profiles := NewProfileService(log, db, conf)
	trades := NewTradeService(log, db, profiles)
	return &fixture{
		db:       db,
		conf:     conf,
		profiles: profiles,
		auth:     NewAuthService(log, db, conf, profiles),
		trades:   trades,
		stats:    NewStatsService(log, trades, profiles),
		export:   NewExportService(log, trades),
		admin:    NewAdminService(log, db),
		digest:   NewDigestService(log, db, conf, nil),
	}
}

func (f *fixture) signUp(t *testing.T, email string) string {
	t.Helper()
	resp, err := f.auth.SignUp(context.Background(), SignUpRequest{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return resp.User.ID
}

func at(day, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
}

func tradeReq(date time.Time, pnl, pnlCurrency float64) TradeRequest {
	return TradeRequest{
		Date:        date,
		Pair:        "EURUSD",
		Direction:   "LONG",
		EntryPrice:  1.1000,
		StopLoss:    1.0950,
		TakeProfit:  1.1100,
		Pnl:         pnl,
		PnlCurrency: pnlCurrency,
		Session:     "London",
	}
}
