package handler

import (
	"net/http"

	"github.com/dushixiang/pipvault/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProfileHandler 用户设置
type ProfileHandler struct {
	logger         *zap.Logger
	profileService *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		logger:         logger,
		profileService: profileService,
	}
}

// Get 获取设置
// GET /api/profile
func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.profileService.Get(c.Request().Context(), currentUserId(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update 部分更新设置
// PUT /api/profile
func (h *ProfileHandler) Update(c echo.Context) error {
	var req service.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.profileService.Update(c.Request().Context(), currentUserId(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// SetViewMode 保存统计口径
// PUT /api/profile/view-mode
func (h *ProfileHandler) SetViewMode(c echo.Context) error {
	var req struct {
		Mode string `json:"mode" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.profileService.SetViewMode(c.Request().Context(), currentUserId(c), req.Mode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ToggleViewMode 切换到下一个口径
// POST /api/profile/view-mode/toggle
func (h *ProfileHandler) ToggleViewMode(c echo.Context) error {
	profile, err := h.profileService.ToggleViewMode(c.Request().Context(), currentUserId(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ResetSettings POST /api/profile/reset-settings
func (h *ProfileHandler) ResetSettings(c echo.Context) error {
	profile, err := h.profileService.ResetSettings(c.Request().Context(), currentUserId(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ResetAccount 删除全部交易并恢复默认设置
// POST /api/profile/reset-account
func (h *ProfileHandler) ResetAccount(c echo.Context) error {
	profile, err := h.profileService.ResetAccount(c.Request().Context(), currentUserId(c))
	if err != nil {
		h.logger.Error("failed to reset account", zap.String("user_id", currentUserId(c)), zap.Error(err))
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	profile := g.Group("/profile")

	profile.GET("", h.Get)
	profile.PUT("", h.Update)
	profile.PUT("/view-mode", h.SetViewMode)
	profile.POST("/view-mode/toggle", h.ToggleViewMode)
	profile.POST("/reset-settings", h.ResetSettings)
	profile.POST("/reset-account", h.ResetAccount)
}
