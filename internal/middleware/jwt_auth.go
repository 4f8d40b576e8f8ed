package middleware

import (
	"errors"
	"net/http"

	"github.com/dushixiang/pipvault/internal/service"
	"github.com/dushixiang/pipvault/internal/xe"
	"github.com/dushixiang/pipvault/pkg/nostd"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// JWTAuthConfig JWT认证配置
type JWTAuthConfig struct {
	AuthService *service.AuthService
	Logger      *zap.Logger
}

// JWTAuth 支持 Authorization: Bearer、PipVault-Token 头、查询参数和 cookie
func JWTAuth(config JWTAuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := nostd.GetToken(c)
			if tokenString == "" {
				config.Logger.Debug("JWT token missing",
					zap.String("path", c.Request().URL.Path),
					zap.String("remote_ip", c.RealIP()))

				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": "Unauthorized: missing token",
				})
			}

			claims, err := config.AuthService.Authenticate(c.Request().Context(), tokenString)
			if err != nil {
				if !errors.Is(err, xe.ErrInvalidToken) {
					return err
				}
				config.Logger.Warn("invalid JWT token",
					zap.String("path", c.Request().URL.Path),
					zap.String("remote_ip", c.RealIP()),
					zap.Error(err))

				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": "Unauthorized: invalid or expired token",
				})
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextEmail, claims.Email)

			return next(c)
		}
	}
}

// RequireAdmin 每次请求从数据库读取角色，角色变更立即生效
func RequireAdmin(profileService *service.ProfileService, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userId, _ := c.Get(ContextUserID).(string)
			profile, err := profileService.Get(c.Request().Context(), userId)
			if err != nil {
				return err
			}
			if !profile.IsAdmin() {
				logger.Warn("admin access denied", zap.String("user_id", userId))
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"error": "Forbidden",
				})
			}
			return next(c)
		}
	}
}
