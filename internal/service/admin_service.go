package service

import (
	"context"
	"time"

	"github.com/dushixiang/pipvault/internal/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recentUserLimit = 10

// AdminService 平台概览，仅 admin 可见
type AdminService struct {
	logger      *zap.Logger
	UserRepo    *repo.UserRepo
	ProfileRepo *repo.ProfileRepo
	TradeRepo   *repo.TradeRepo
}

func NewAdminService(logger *zap.Logger, db *gorm.DB) *AdminService {
	return &AdminService{
		logger:      logger,
		UserRepo:    repo.NewUserRepo(db),
		ProfileRepo: repo.NewProfileRepo(db),
		TradeRepo:   repo.NewTradeRepo(db),
	}
}

type RecentUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Overview struct {
	TotalUsers  int64        `json:"total_users"`
	TotalTrades int64        `json:"total_trades"`
	RecentUsers []RecentUser `json:"recent_users"`
}

func (s *AdminService) Overview(ctx context.Context) (*Overview, error) {
	totalUsers, err := s.UserRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalTrades, err := s.TradeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := s.ProfileRepo.FindRecent(ctx, recentUserLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	users, err := s.UserRepo.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	recent := make([]RecentUser, 0, len(profiles))
	for _, p := range profiles {
		recent = append(recent, RecentUser{
			ID:        p.ID,
			Email:     emails[p.ID],
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Role:      p.Role,
			CreatedAt: p.CreatedAt,
		})
	}

	return &Overview{
		TotalUsers:  totalUsers,
		TotalTrades: totalTrades,
		RecentUsers: recent,
	}, nil
}
