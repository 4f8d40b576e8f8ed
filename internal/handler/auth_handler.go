package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/dushixiang/pipvault/internal/config"
	"github.com/dushixiang/pipvault/internal/service"
	"github.com/dushixiang/pipvault/pkg/nostd"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const verifyFailedMessage = "Could not verify email"

// AuthHandler 认证处理器
type AuthHandler struct {
	logger      *zap.Logger
	conf        *config.Config
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(logger *zap.Logger, conf *config.Config, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		conf:        conf,
		authService: authService,
	}
}

func (h *AuthHandler) setTokenCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     nostd.Token,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.conf.Auth.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// SignUp 注册
// POST /api/auth/sign-up
func (h *AuthHandler) SignUp(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := h.authService.SignUp(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// SignIn 用户登录
// POST /api/auth/sign-in
func (h *AuthHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.SignInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := h.authService.SignIn(ctx, req, c.RealIP())
	if err != nil {
		return err
	}
	h.setTokenCookie(c, resp.Token, resp.ExpiresAt)
	return c.JSON(http.StatusOK, resp)
}

// Exchange 一次性登录码换取令牌
// POST /api/auth/exchange
func (h *AuthHandler) Exchange(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Code string `json:"code" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := h.authService.ExchangeCode(ctx, req.Code, c.RealIP())
	if err != nil {
		return err
	}
	h.setTokenCookie(c, resp.Token, resp.ExpiresAt)
	return c.JSON(http.StatusOK, resp)
}

// Callback 邮件确认回调，成功后跳转到 next
// GET /api/auth/callback?code=&next=
func (h *AuthHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.authService.ExchangeCode(ctx, c.QueryParam("code"), c.RealIP())
	if err != nil {
		h.logger.Warn("auth callback failed", zap.Error(err))
		return c.Redirect(http.StatusFound, "/login?"+url.Values{"error": {verifyFailedMessage}}.Encode())
	}

	h.setTokenCookie(c, resp.Token, resp.ExpiresAt)
	next := nostd.SafeRedirect(c.QueryParam("next"), h.conf.Auth.RedirectDefault)
	return c.Redirect(http.StatusFound, next)
}

// SignOut 清除登录 cookie
// POST /api/auth/sign-out
func (h *AuthHandler) SignOut(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     nostd.Token,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.conf.Auth.SecureCookie,
	})
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Signed out",
	})
}

// GetCurrentUser 获取当前用户信息
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.authService.GetCurrentUser(ctx, currentUserId(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword 修改密码
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userId := currentUserId(c)
	if err := h.authService.ChangePassword(ctx, userId, req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Password updated",
	})
}

// DeleteAccount 删除账户
// DELETE /api/auth/account
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.authService.DeleteAccount(ctx, currentUserId(c)); err != nil {
		return err
	}
	return h.SignOut(c)
}

// RegisterRoutes 注册公开路由
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	auth := g.Group("/auth")

	auth.POST("/sign-up", h.SignUp)
	auth.POST("/sign-in", h.SignIn)
	auth.POST("/exchange", h.Exchange)
	auth.GET("/callback", h.Callback)
	auth.POST("/sign-out", h.SignOut)
}

// RegisterProtectedRoutes 注册需要认证的路由
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/me", h.GetCurrentUser)
	g.POST("/change-password", h.ChangePassword)
	g.DELETE("/account", h.DeleteAccount)
}
