package service

import (
	"context"
	"time"

	"github.com/dushixiang/pipvault/internal/models"
	"github.com/dushixiang/pipvault/internal/xe"
	"github.com/dushixiang/pipvault/pkg/stats"
	"go.uber.org/zap"
)

// StatsService 每次请求从数据库重新加载交易并计算，不做缓存
type StatsService struct {
	logger         *zap.Logger
	tradeService   *TradeService
	profileService *ProfileService
}

func NewStatsService(logger *zap.Logger, tradeService *TradeService, profileService *ProfileService) *StatsService {
	return &StatsService{
		logger:         logger,
		tradeService:   tradeService,
		profileService: profileService,
	}
}

// Query 口径为空时使用用户偏好
type Query struct {
	Mode   string
	Filter stats.Filter
	Period Period
}

type dataset struct {
	profile *models.Profile
	basis   stats.Basis
	entries []stats.Entry
}

func (s *StatsService) load(ctx context.Context, userId string, q Query) (*dataset, error) {
	profile, err := s.profileService.Get(ctx, userId)
	if err != nil {
		return nil, err
	}

	mode := q.Mode
	if mode == "" {
		mode = profile.ViewMode
	}
	viewMode, err := stats.ParseViewMode(mode)
	if err != nil {
		return nil, xe.ErrInvalidViewMode
	}

	loc := profile.Location()
	filter, err := q.Period.Resolve(q.Filter, loc)
	if err != nil {
		return nil, err
	}

	trades, err := s.tradeService.List(ctx, userId, stats.Filter{})
	if err != nil {
		return nil, err
	}

	return &dataset{
		profile: profile,
		basis: stats.Basis{
			Mode:           viewMode,
			StartingEquity: profile.StartingEquity,
			Location:       loc,
		},
		entries: filter.Apply(models.Entries(trades)),
	}, nil
}

func (s *StatsService) Dashboard(ctx context.Context, userId string, q Query) (*stats.Dashboard, error) {
	d, err := s.load(ctx, userId, q)
	if err != nil {
		return nil, err
	}
	dashboard := stats.NewDashboard(d.entries, d.basis, d.profile.Currency)
	return &dashboard, nil
}

func (s *StatsService) Summary(ctx context.Context, userId string, q Query) (*stats.Summary, error) {
	d, err := s.load(ctx, userId, q)
	if err != nil {
		return nil, err
	}
	summary := stats.Summarize(d.entries, d.basis)
	return &summary, nil
}

func (s *StatsService) Equity(ctx context.Context, userId string, q Query) (*stats.Series, error) {
	d, err := s.load(ctx, userId, q)
	if err != nil {
		return nil, err
	}
	series := stats.EquityCurve(d.entries, d.basis)
	return &series, nil
}

func (s *StatsService) Setups(ctx context.Context, userId string, q Query) ([]stats.Bucket, error) {
	d, err := s.load(ctx, userId, q)
	if err != nil {
		return nil, err
	}
	return stats.BySetup(d.entries, d.basis), nil
}

func (s *StatsService) Emotions(ctx context.Context, userId string, q Query) ([]stats.EmotionBucket, error) {
	d, err := s.load(ctx, userId, q)
	if err != nil {
		return nil, err
	}
	return stats.ByEmotion(d.entries, d.basis), nil
}

func (s *StatsService) Sessions(ctx context.Context, userId string, q Query) ([]stats.Bucket, error) {
	d, err := s.load(ctx, userId, q)
	if err != nil {
		return nil, err
	}
	return stats.BySession(d.entries, d.basis), nil
}

func (s *StatsService) Pairs(ctx context.Context, userId string, q Query) ([]stats.Bucket, error) {
	d, err := s.load(ctx, userId, q)
	if err != nil {
		return nil, err
	}
	return stats.ByPair(d.entries, d.basis), nil
}

// Calendar year 或 month 为 0 时分别取用户时区的当前年份、月份
func (s *StatsService) Calendar(ctx context.Context, userId string, q Query, year int, month time.Month) (*stats.CalendarMonth, error) {
	d, err := s.load(ctx, userId, q)
	if err != nil {
		return nil, err
	}
	now := time.Now().In(d.basis.Location)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	if month < time.January || month > time.December {
		return nil, xe.ErrInvalidParams
	}
	cal := stats.Calendar(d.entries, d.basis, year, month)
	return &cal, nil
}
