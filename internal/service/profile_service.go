package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dushixiang/pipvault/internal/config"
	"github.com/dushixiang/pipvault/internal/models"
	"github.com/dushixiang/pipvault/internal/repo"
	"github.com/dushixiang/pipvault/internal/xe"
	"github.com/dushixiang/pipvault/pkg/stats"
	"github.com/go-orz/orz"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileService 用户设置
type ProfileService struct {
	*orz.Service
	logger      *zap.Logger
	journal     config.JournalConf
	UserRepo    *repo.UserRepo
	ProfileRepo *repo.ProfileRepo
	TradeRepo   *repo.TradeRepo
}

func NewProfileService(logger *zap.Logger, db *gorm.DB, conf *config.Config) *ProfileService {
	return &ProfileService{
		Service:     orz.NewService(db),
		logger:      logger,
		journal:     conf.Journal,
		UserRepo:    repo.NewUserRepo(db),
		ProfileRepo: repo.NewProfileRepo(db),
		TradeRepo:   repo.NewTradeRepo(db),
	}
}

// UpdateProfileRequest 只更新非空字段
type UpdateProfileRequest struct {
	FirstName      *string   `json:"first_name" validate:"omitempty,max=100"`
	LastName       *string   `json:"last_name" validate:"omitempty,max=100"`
	StartingEquity *float64  `json:"starting_equity" validate:"omitempty,gt=0"`
	Currency       *string   `json:"currency" validate:"omitempty,len=3"`
	Sessions       *[]string `json:"sessions" validate:"omitempty,dive,required,max=50"`
	Strategies     *[]string `json:"strategies" validate:"omitempty,dive,required,max=100"`
	AccountTypes   *[]string `json:"account_types" validate:"omitempty,dive,required,max=50"`
	AssetClass     *string   `json:"asset_class" validate:"omitempty,oneof=forex futures"`
	Timezone       *string   `json:"timezone" validate:"omitempty,max=64"`
	TelegramChatID *string   `json:"telegram_chat_id" validate:"omitempty,max=64"`
	DigestEnabled  *bool     `json:"digest_enabled"`
}

// NewDefaultProfile 注册时的默认设置
func (s *ProfileService) NewDefaultProfile(userId, role string) models.Profile {
	p := models.Profile{ID: userId, Role: role, ViewMode: string(stats.Pips)}
	s.applyDefaults(&p)
	return p
}

func (s *ProfileService) applyDefaults(p *models.Profile) {
	p.FirstName = ""
	p.LastName = ""
	p.StartingEquity = s.journal.StartingEquity
	p.Currency = s.journal.Currency
	p.Sessions = datatypes.JSONSlice[string](clone(s.journal.Sessions))
	p.AccountTypes = datatypes.JSONSlice[string](clone(s.journal.AccountTypes))
	p.AssetClass = s.journal.AssetClass
	p.Timezone = s.journal.Timezone
	if p.Strategies == nil {
		p.Strategies = datatypes.JSONSlice[string](clone(s.journal.Strategies))
	}
	if p.Role == "" {
		p.Role = models.RoleUser
	}
}

// Get 获取用户设置，不存在时按默认值创建；用户已删除时返回 ErrInvalidToken
func (s *ProfileService) Get(ctx context.Context, userId string) (*models.Profile, error) {
	profile, err := s.ProfileRepo.FindByUserId(ctx, userId)
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.UserRepo.FindByUserId(ctx, userId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrInvalidToken
		}
		return nil, err
	}

	profile = s.NewDefaultProfile(userId, models.RoleUser)
	if err := s.ProfileRepo.Create(ctx, &profile); err != nil {
		return nil, err
	}
	s.logger.Info("profile created with defaults", zap.String("user_id", userId))
	return &profile, nil
}

// Update 部分更新
func (s *ProfileService) Update(ctx context.Context, userId string, req UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.Get(ctx, userId)
	if err != nil {
		return nil, err
	}

	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if _, err := time.LoadLocation(tz); err != nil || tz == "" {
			return nil, xe.ErrInvalidTimezone
		}
		profile.Timezone = tz
	}
	if req.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		profile.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.StartingEquity != nil {
		profile.StartingEquity = *req.StartingEquity
	}
	if req.Currency != nil {
		profile.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Sessions != nil {
		profile.Sessions = datatypes.JSONSlice[string](clone(*req.Sessions))
	}
	if req.Strategies != nil {
		profile.Strategies = datatypes.JSONSlice[string](clone(*req.Strategies))
	}
	if req.AccountTypes != nil {
		profile.AccountTypes = datatypes.JSONSlice[string](clone(*req.AccountTypes))
	}
	if req.AssetClass != nil {
		profile.AssetClass = *req.AssetClass
	}
	if req.TelegramChatID != nil {
		profile.TelegramChatID = strings.TrimSpace(*req.TelegramChatID)
	}
	if req.DigestEnabled != nil {
		profile.DigestEnabled = *req.DigestEnabled
	}

	if err := s.ProfileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetViewMode 保存统计口径偏好
func (s *ProfileService) SetViewMode(ctx context.Context, userId, mode string) (*models.Profile, error) {
	m, err := stats.ParseViewMode(mode)
	if err != nil || mode == "" {
		return nil, xe.ErrInvalidViewMode
	}
	profile, err := s.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	profile.ViewMode = string(m)
	if err := s.ProfileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ToggleViewMode pips -> currency -> percentage -> pips
func (s *ProfileService) ToggleViewMode(ctx context.Context, userId string) (*models.Profile, error) {
	profile, err := s.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	current, err := stats.ParseViewMode(profile.ViewMode)
	if err != nil {
		current = stats.Pips
	}
	profile.ViewMode = string(current.Next())
	if err := s.ProfileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ResetSettings 恢复默认设置，策略列表保留
func (s *ProfileService) ResetSettings(ctx context.Context, userId string) (*models.Profile, error) {
	profile, err := s.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	s.applyDefaults(profile)
	if err := s.ProfileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("profile settings reset", zap.String("user_id", userId))
	return profile, nil
}

// ResetAccount 删除全部交易并恢复默认设置
func (s *ProfileService) ResetAccount(ctx context.Context, userId string) (*models.Profile, error) {
	var profile *models.Profile
	err := s.Transaction(ctx, func(ctx context.Context) error {
		deleted, err := s.TradeRepo.DeleteByUserId(ctx, userId)
		if err != nil {
			return err
		}
		profile, err = s.ResetSettings(ctx, userId)
		if err != nil {
			return err
		}
		s.logger.Info("account reset",
			zap.String("user_id", userId),
			zap.Int64("deleted_trades", deleted))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
