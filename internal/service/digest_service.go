package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dushixiang/pipvault/internal/config"
	"github.com/dushixiang/pipvault/internal/models"
	"github.com/dushixiang/pipvault/internal/repo"
	"github.com/dushixiang/pipvault/internal/telegram"
	"github.com/dushixiang/pipvault/pkg/stats"
	"github.com/robfig/cron/v3"
	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const digestWindow = 7 * 24 * time.Hour

const digestTemplate = `*PipVault weekly digest*
{{from}} to {{to}}

Trades: {{trades}}
Net PnL: {{net}}
Win rate: {{win_rate}}%
Profit factor: {{profit_factor}}
Best day: {{best_day}}
Worst day: {{worst_day}}`

// Notifier 推送渠道
type Notifier interface {
	Notify(chatId, msg string) error
}

// DigestService 定时推送最近 7 天的交易周报
type DigestService struct {
	logger      *zap.Logger
	conf        config.DigestConf
	ProfileRepo *repo.ProfileRepo
	TradeRepo   *repo.TradeRepo
	notifier    Notifier
	cron        *cron.Cron
}

func NewDigestService(logger *zap.Logger, db *gorm.DB, conf *config.Config, tg *telegram.Telegram) *DigestService {
	s := &DigestService{
		logger:      logger,
		conf:        conf.Digest,
		ProfileRepo: repo.NewProfileRepo(db),
		TradeRepo:   repo.NewTradeRepo(db),
	}
	if tg != nil {
		s.notifier = tg
	}
	return s
}

func (s *DigestService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Start 注册定时任务，未启用或没有推送渠道时直接返回
func (s *DigestService) Start() error {
	if !s.conf.Enabled {
		s.logger.Info("weekly digest disabled")
		return nil
	}
	if s.notifier == nil {
		s.logger.Warn("weekly digest enabled but telegram is not configured")
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.conf.Cron, func() {
		sent, err := s.RunOnce(context.Background(), time.Now())
		if err != nil {
			s.logger.Error("weekly digest failed", zap.Error(err))
			return
		}
		s.logger.Info("weekly digest sent", zap.Int("sent", sent))
	})
	if err != nil {
		return fmt.Errorf("invalid digest cron %q: %w", s.conf.Cron, err)
	}
	s.cron.Start()
	s.logger.Info("weekly digest scheduled", zap.String("cron", s.conf.Cron))
	return nil
}

func (s *DigestService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunOnce 给所有订阅用户推送 [now-7d, now) 的统计，单个用户失败不影响其他用户
func (s *DigestService) RunOnce(ctx context.Context, now time.Time) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}
	profiles, err := s.ProfileRepo.FindDigestSubscribers(ctx)
	if err != nil {
		return 0, err
	}

	from := now.Add(-digestWindow)
	sent := 0
	for i := range profiles {
		profile := profiles[i]
		trades, err := s.TradeRepo.FindByUserIdBetween(ctx, profile.ID, from, now)
		if err != nil {
			s.logger.Error("failed to load digest trades", zap.String("user_id", profile.ID), zap.Error(err))
			continue
		}

		basis := stats.Basis{
			Mode:           stats.Currency,
			StartingEquity: profile.StartingEquity,
			Location:       profile.Location(),
		}
		summary := stats.Summarize(models.Entries(trades), basis)
		msg := RenderDigest(profile, summary, basis.Day(from), basis.Day(now))

		if err := s.notifier.Notify(profile.TelegramChatID, msg); err != nil {
			s.logger.Warn("failed to send digest",
				zap.String("user_id", profile.ID),
				zap.String("chat_id", profile.TelegramChatID),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// RenderDigest 生成 MarkdownV2 消息
func RenderDigest(profile models.Profile, summary stats.Summary, from, to string) string {
	day := func(d *stats.DayTotal) string {
		if d == nil {
			return "-"
		}
		return d.Date + " " + stats.FormatValue(d.Value, summary.Mode, profile.Currency)
	}

	values := map[string]interface{}{
		"from":          from,
		"to":            to,
		"trades":        strconv.Itoa(summary.TotalTrades),
		"net":           stats.FormatValue(summary.NetTotal, summary.Mode, profile.Currency),
		"win_rate":      strconv.FormatFloat(summary.WinRate, 'f', 0, 64),
		"profit_factor": strconv.FormatFloat(summary.ProfitFactor, 'f', 2, 64),
		"best_day":      day(summary.BestDay),
		"worst_day":     day(summary.WorstDay),
	}
	for k, v := range values {
		values[k] = telegram.EscapeMarkdownV2(v.(string))
	}

	return fasttemplate.New(digestTemplate, "{{", "}}").ExecuteString(values)
}
