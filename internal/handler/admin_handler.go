package handler

import (
	"net/http"

	"github.com/dushixiang/pipvault/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminHandler 管理员处理器
type AdminHandler struct {
	logger       *zap.Logger
	adminService *service.AdminService
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(logger *zap.Logger, adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		logger:       logger,
		adminService: adminService,
	}
}

// Overview 平台概览
// GET /api/admin/overview
func (h *AdminHandler) Overview(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.adminService.Overview(ctx)
	if err != nil {
		h.logger.Error("failed to get admin overview", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to load overview",
		})
	}

	return c.JSON(http.StatusOK, overview)
}

// RegisterRoutes 外部负责挂载认证和 admin 校验中间件
func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/overview", h.Overview)
}
