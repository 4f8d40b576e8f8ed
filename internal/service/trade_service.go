package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dushixiang/pipvault/internal/models"
	"github.com/dushixiang/pipvault/internal/repo"
	"github.com/dushixiang/pipvault/internal/xe"
	"github.com/dushixiang/pipvault/pkg/pips"
	"github.com/dushixiang/pipvault/pkg/stats"
	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TradeService 交易日志
type TradeService struct {
	*orz.Service
	logger         *zap.Logger
	TradeRepo      *repo.TradeRepo
	profileService *ProfileService
}

func NewTradeService(logger *zap.Logger, db *gorm.DB, profileService *ProfileService) *TradeService {
	return &TradeService{
		Service:        orz.NewService(db),
		logger:         logger,
		TradeRepo:      repo.NewTradeRepo(db),
		profileService: profileService,
	}
}

// TradeRequest 新增和编辑共用，风险回报由价格推导，不接受客户端传入
type TradeRequest struct {
	Date        time.Time  `json:"date" validate:"required"`
	ExitDate    *time.Time `json:"exit_date"`
	Pair        string     `json:"pair" validate:"required,max=32"`
	AssetClass  string     `json:"asset_class" validate:"omitempty,oneof=forex futures"`
	Direction   string     `json:"direction" validate:"required,oneof=LONG SHORT"`
	EntryPrice  float64    `json:"entry_price" validate:"required,gt=0"`
	StopLoss    float64    `json:"stop_loss" validate:"gte=0"`
	TakeProfit  float64    `json:"take_profit" validate:"gte=0"`
	Pnl         float64    `json:"pnl"`
	PnlCurrency float64    `json:"pnl_currency"`
	Commission  float64    `json:"commission" validate:"gte=0"`
	Swap        float64    `json:"swap"`
	Setup       string     `json:"setup" validate:"max=100"`
	Emotion     string     `json:"emotion" validate:"omitempty,oneof=Confident Neutral FOMO Greedy Hesitant Revenge"`
	Session     string     `json:"session" validate:"required,max=50"`
	AccountType string     `json:"account_type" validate:"max=50"`
	Comment     string     `json:"comment" validate:"max=5000"`
	ChartURL    string     `json:"chart_url" validate:"omitempty,url,max=500"`
}

// Normalize 统一大小写和空白，在校验前调用
func (r *TradeRequest) Normalize() {
	r.Pair = strings.ToUpper(strings.TrimSpace(r.Pair))
	r.Direction = strings.ToUpper(strings.TrimSpace(r.Direction))
	r.AssetClass = strings.ToLower(strings.TrimSpace(r.AssetClass))
	r.Setup = strings.TrimSpace(r.Setup)
	r.Session = strings.TrimSpace(r.Session)
	r.ChartURL = strings.TrimSpace(r.ChartURL)
}

func (s *TradeService) apply(trade *models.Trade, req TradeRequest, defaultAssetClass string) {
	assetClass := req.AssetClass
	if assetClass == "" {
		assetClass = defaultAssetClass
	}
	geometry := pips.Compute(assetClass, req.Pair, req.EntryPrice, req.StopLoss, req.TakeProfit)

	trade.Date = req.Date.UTC()
	trade.ExitDate = nil
	if req.ExitDate != nil {
		exit := req.ExitDate.UTC()
		trade.ExitDate = &exit
	}
	trade.Pair = req.Pair
	trade.AssetClass = assetClass
	trade.Direction = req.Direction
	trade.EntryPrice = req.EntryPrice
	trade.StopLoss = req.StopLoss
	trade.TakeProfit = req.TakeProfit
	trade.RiskPips = geometry.RiskPips
	trade.RewardPips = geometry.RewardPips
	trade.RRRatio = geometry.RRRatio
	trade.Pnl = req.Pnl
	trade.PnlCurrency = req.PnlCurrency
	trade.Commission = req.Commission
	trade.Swap = req.Swap
	trade.Setup = req.Setup
	trade.Emotion = req.Emotion
	trade.Session = req.Session
	trade.AccountType = req.AccountType
	trade.Comment = req.Comment
	trade.ChartURL = req.ChartURL
}

// Period 查询窗口的原始参数，纯日期按用户时区解析
type Period struct {
	From string
	To   string
}

// Resolve 把窗口写入 filter，格式错误时返回 ErrInvalidParams
func (p Period) Resolve(filter stats.Filter, loc *time.Location) (stats.Filter, error) {
	from, err := stats.ParseBound(p.From, loc)
	if err != nil {
		return filter, xe.ErrInvalidParams
	}
	to, err := stats.ParseBound(p.To, loc)
	if err != nil {
		return filter, xe.ErrInvalidParams
	}
	if from != nil {
		filter.From = from
	}
	if to != nil {
		filter.To = to
	}
	return filter, nil
}

// Search 列表查询，时间窗口按用户时区解析
func (s *TradeService) Search(ctx context.Context, userId string, filter stats.Filter, period Period) ([]models.Trade, error) {
	profile, err := s.profileService.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	filter, err = period.Resolve(filter, profile.Location())
	if err != nil {
		return nil, err
	}
	return s.List(ctx, userId, filter)
}

// List 按开仓时间倒序
func (s *TradeService) List(ctx context.Context, userId string, filter stats.Filter) ([]models.Trade, error) {
	trades, err := s.TradeRepo.FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	result := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if filter.Match(t.Entry()) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (s *TradeService) Get(ctx context.Context, userId, id string) (*models.Trade, error) {
	trade, err := s.TradeRepo.FindByIdAndUserId(ctx, id, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrNotFound
		}
		return nil, err
	}
	return &trade, nil
}

func (s *TradeService) Create(ctx context.Context, userId string, req TradeRequest) (*models.Trade, error) {
	profile, err := s.profileService.Get(ctx, userId)
	if err != nil {
		return nil, err
	}

	trade := models.Trade{
		ID:     ulid.Make().String(),
		UserID: userId,
	}
	s.apply(&trade, req, profile.AssetClass)

	if err := s.TradeRepo.Create(ctx, &trade); err != nil {
		return nil, err
	}
	s.logger.Info("trade created",
		zap.String("user_id", userId),
		zap.String("trade_id", trade.ID),
		zap.String("pair", trade.Pair))
	return &trade, nil
}

func (s *TradeService) Update(ctx context.Context, userId, id string, req TradeRequest) (*models.Trade, error) {
	trade, err := s.Get(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	// 编辑时沿用原来的资产类别
	s.apply(trade, req, trade.AssetClass)

	if err := s.TradeRepo.Save(ctx, trade); err != nil {
		return nil, err
	}
	return trade, nil
}

func (s *TradeService) Delete(ctx context.Context, userId, id string) error {
	affected, err := s.TradeRepo.DeleteByIdAndUserId(ctx, id, userId)
	if err != nil {
		return err
	}
	if affected == 0 {
		return xe.ErrNotFound
	}
	return nil
}

// DeleteAll 清空交易，设置保持不变
func (s *TradeService) DeleteAll(ctx context.Context, userId string) (int64, error) {
	deleted, err := s.TradeRepo.DeleteByUserId(ctx, userId)
	if err != nil {
		return 0, err
	}
	s.logger.Info("trades reset", zap.String("user_id", userId), zap.Int64("deleted", deleted))
	return deleted, nil
}

var (
	demoPairs = []string{"EURUSD", "GBPUSD", "USDJPY", "AUDUSD", "USDCAD", "GBPJPY"}
	demoNotes = []string{
		"Followed the plan.",
		"Entered early, should have waited for the retest.",
		"Clean break of structure.",
		"Moved stop to breakeven too soon.",
		"",
	}
)

// SeedDemo 生成演示数据，分布在最近 days 天内
func (s *TradeService) SeedDemo(ctx context.Context, userId string, count, days int) ([]models.Trade, error) {
	profile, err := s.profileService.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}

	now := time.Now().UTC()
	trades := make([]models.Trade, 0, count)
	for i := 0; i < count; i++ {
		req := demoTrade(now, days, profile)
		trade := models.Trade{ID: ulid.Make().String(), UserID: userId}
		s.apply(&trade, req, pips.AssetForex)
		trades = append(trades, trade)
	}

	err = s.Transaction(ctx, func(ctx context.Context) error {
		for i := range trades {
			if err := s.TradeRepo.Create(ctx, &trades[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("demo trades seeded", zap.String("user_id", userId), zap.Int("count", count))
	return trades, nil
}

func demoTrade(now time.Time, days int, profile *models.Profile) TradeRequest {
	pair := pick(demoPairs)
	direction := models.DirectionLong
	if rand.IntN(2) == 0 {
		direction = models.DirectionShort
	}

	entry := 1.0 + rand.Float64()*0.5
	if strings.Contains(pair, "JPY") {
		entry = 140 + rand.Float64()*20
	}
	multiplier := pips.Multiplier(pips.AssetForex, pair).InexactFloat64()

	riskPips := float64(10 + rand.IntN(30))
	rewardPips := riskPips * (1 + rand.Float64()*2)
	sign := 1.0
	if direction == models.DirectionShort {
		sign = -1
	}
	stop := entry - sign*riskPips/multiplier
	target := entry + sign*rewardPips/multiplier

	// 约 55% 胜率
	var pnl float64
	switch r := rand.Float64(); {
	case r < 0.55:
		pnl = rewardPips
	case r < 0.95:
		pnl = -riskPips
	}
	pnl = float64(int(pnl*10)) / 10

	date := now.Add(-time.Duration(rand.IntN(days*24*60)) * time.Minute)
	exit := date.Add(time.Duration(15+rand.IntN(8*60)) * time.Minute)

	return TradeRequest{
		Date:        date,
		ExitDate:    &exit,
		Pair:        pair,
		Direction:   direction,
		EntryPrice:  entry,
		StopLoss:    stop,
		TakeProfit:  target,
		Pnl:         pnl,
		PnlCurrency: float64(int(pnl*10*100)) / 100,
		Commission:  3.5,
		Setup:       pick(profile.Strategies),
		Emotion:     pick(models.Emotions),
		Session:     pick(profile.Sessions),
		AccountType: pick(profile.AccountTypes),
		Comment:     pick(demoNotes),
	}
}

func pick[T any](items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[rand.IntN(len(items))]
}
