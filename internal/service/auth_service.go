package service

import (
	"context"
	"errors"
	"time"

	"github.com/dushixiang/pipvault/internal/config"
	"github.com/dushixiang/pipvault/internal/models"
	"github.com/dushixiang/pipvault/internal/repo"
	"github.com/dushixiang/pipvault/internal/xe"
	"github.com/dushixiang/pipvault/pkg/nostd"
	"github.com/go-orz/orz"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const issuer = "pipvault"

// AuthService 认证服务
type AuthService struct {
	*orz.Service
	logger         *zap.Logger
	conf           *config.Config
	UserRepo       *repo.UserRepo
	AuthCodeRepo   *repo.AuthCodeRepo
	profileService *ProfileService
	jwtSecret      string
	jwtExpiration  time.Duration
	codeExpiration time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(logger *zap.Logger, db *gorm.DB, conf *config.Config, profileService *ProfileService) *AuthService {
	jwtSecret := conf.Auth.JwtSecret
	if jwtSecret == "" {
		logger.Warn("jwt secret not configured, tokens will not survive a restart")
		jwtSecret = uuid.NewString()
	}
	return &AuthService{
		Service:        orz.NewService(db),
		logger:         logger,
		conf:           conf,
		UserRepo:       repo.NewUserRepo(db),
		AuthCodeRepo:   repo.NewAuthCodeRepo(db),
		profileService: profileService,
		jwtSecret:      jwtSecret,
		jwtExpiration:  time.Duration(conf.Auth.TokenTTLHours) * time.Hour,
		codeExpiration: time.Duration(conf.Auth.CodeTTLMinutes) * time.Minute,
	}
}

// JWTClaims JWT载荷
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// SignUpResponse 注册后返回一次性登录码，用于邮件确认回调
type SignUpResponse struct {
	User          UserInfo  `json:"user"`
	Code          string    `json:"code"`
	CodeExpiresAt time.Time `json:"code_expires_at"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SignUp 注册账户并创建默认设置
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	email := nostd.NormalizeEmail(req.Email)
	if _, err := s.UserRepo.FindByEmail(ctx, email); err == nil {
		return nil, xe.ErrAccountAlreadyUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := nostd.BcryptEncode([]byte(req.Password))
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if s.conf.IsAdminEmail(email) {
		role = models.RoleAdmin
	}

	user := models.User{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: string(passwordHash),
	}
	profile := s.profileService.NewDefaultProfile(user.ID, role)
	var code *models.AuthCode

	err = s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.UserRepo.Create(ctx, &user); err != nil {
			return err
		}
		if err := s.profileService.ProfileRepo.Create(ctx, &profile); err != nil {
			return err
		}
		var err error
		code, err = s.IssueAuthCode(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID), zap.String("role", role))
	return &SignUpResponse{
		User:          toUserInfo(user, profile),
		Code:          code.ID,
		CodeExpiresAt: code.ExpiresAt,
	}, nil
}

// SignIn 邮箱密码登录
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest, ip string) (*LoginResponse, error) {
	email := nostd.NormalizeEmail(req.Email)
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login failed: user not found", zap.String("email", email), zap.String("ip", ip))
			return nil, xe.ErrIncorrectPassword
		}
		return nil, err
	}

	if err := nostd.BcryptMatch([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login failed: invalid password", zap.String("email", email), zap.String("ip", ip))
		return nil, xe.ErrIncorrectPassword
	}

	return s.login(ctx, user, ip)
}

// IssueAuthCode 生成一次性登录码
func (s *AuthService) IssueAuthCode(ctx context.Context, userId string) (*models.AuthCode, error) {
	code := models.AuthCode{
		ID:        ulid.Make().String(),
		UserID:    userId,
		ExpiresAt: time.Now().Add(s.codeExpiration),
	}
	if err := s.AuthCodeRepo.Create(ctx, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

// ExchangeCode 用一次性登录码换取令牌
func (s *AuthService) ExchangeCode(ctx context.Context, code, ip string) (*LoginResponse, error) {
	if code == "" {
		return nil, xe.ErrInvalidAuthCode
	}
	authCode, err := s.AuthCodeRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrInvalidAuthCode
		}
		return nil, err
	}
	if !authCode.Usable(time.Now()) {
		return nil, xe.ErrInvalidAuthCode
	}
	ok, err := s.AuthCodeRepo.MarkUsed(ctx, authCode.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, xe.ErrInvalidAuthCode
	}

	user, err := s.UserRepo.FindByUserId(ctx, authCode.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrInvalidAuthCode
		}
		return nil, err
	}
	return s.login(ctx, user, ip)
}

func (s *AuthService) login(ctx context.Context, user models.User, ip string) (*LoginResponse, error) {
	profile, err := s.profileService.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(ctx, user.ID, ip); err != nil {
		s.logger.Error("failed to update last login", zap.Error(err))
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtExpiration)
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("ip", ip))

	return &LoginResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		User:      toUserInfo(user, *profile),
	}, nil
}

// ValidateToken 验证JWT Token
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, xe.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, xe.ErrInvalidToken
}

// Authenticate 校验令牌并确认用户仍然存在，账户删除后旧令牌立即失效
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*JWTClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.FindByUserId(ctx, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrInvalidToken
		}
		return nil, err
	}
	return claims, nil
}

// GetCurrentUser 获取当前用户信息
func (s *AuthService) GetCurrentUser(ctx context.Context, userId string) (*UserInfo, error) {
	user, err := s.UserRepo.FindByUserId(ctx, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrInvalidToken
		}
		return nil, err
	}
	profile, err := s.profileService.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user, *profile)
	return &info, nil
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(ctx context.Context, userId string, req ChangePasswordRequest) error {
	if req.Password != req.ConfirmPassword {
		return xe.ErrPasswordMismatch
	}
	passwordHash, err := nostd.BcryptEncode([]byte(req.Password))
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(ctx, userId, string(passwordHash)); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("user_id", userId))
	return nil
}

// DeleteAccount 删除账户及其全部数据
func (s *AuthService) DeleteAccount(ctx context.Context, userId string) error {
	err := s.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.profileService.TradeRepo.DeleteByUserId(ctx, userId); err != nil {
			return err
		}
		if err := s.AuthCodeRepo.DeleteByUserId(ctx, userId); err != nil {
			return err
		}
		if err := s.profileService.ProfileRepo.DeleteById(ctx, userId); err != nil {
			return err
		}
		return s.UserRepo.DeleteById(ctx, userId)
	})
	if err != nil {
		return err
	}
	s.logger.Info("account deleted", zap.String("user_id", userId))
	return nil
}

func toUserInfo(user models.User, profile models.Profile) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Role:      profile.Role,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
	}
}
