package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/dushixiang/pipvault/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const maxDemoTrades = 200

// TradeHandler 交易日志处理器
type TradeHandler struct {
	logger        *zap.Logger
	tradeService  *service.TradeService
	exportService *service.ExportService
}

func NewTradeHandler(logger *zap.Logger, tradeService *service.TradeService, exportService *service.ExportService) *TradeHandler {
	return &TradeHandler{
		logger:        logger,
		tradeService:  tradeService,
		exportService: exportService,
	}
}

func (h *TradeHandler) bindTrade(c echo.Context) (*service.TradeRequest, error) {
	var req service.TradeRequest
	if err := c.Bind(&req); err != nil {
		return nil, badRequest(c, "Invalid request body")
	}
	req.Normalize()
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// List 获取交易列表
// GET /api/trades
func (h *TradeHandler) List(c echo.Context) error {
	filter, period := parseFilter(c)
	trades, err := h.tradeService.Search(c.Request().Context(), currentUserId(c), filter, period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trades)
}

// Get GET /api/trades/:id
func (h *TradeHandler) Get(c echo.Context) error {
	trade, err := h.tradeService.Get(c.Request().Context(), currentUserId(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// Create 新增交易
// POST /api/trades
func (h *TradeHandler) Create(c echo.Context) error {
	req, err := h.bindTrade(c)
	if req == nil {
		return err
	}

	trade, err := h.tradeService.Create(c.Request().Context(), currentUserId(c), *req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trade)
}

// Update 编辑交易
// PUT /api/trades/:id
func (h *TradeHandler) Update(c echo.Context) error {
	req, err := h.bindTrade(c)
	if req == nil {
		return err
	}

	trade, err := h.tradeService.Update(c.Request().Context(), currentUserId(c), c.Param("id"), *req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// Delete DELETE /api/trades/:id
func (h *TradeHandler) Delete(c echo.Context) error {
	if err := h.tradeService.Delete(c.Request().Context(), currentUserId(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll 清空交易
// DELETE /api/trades
func (h *TradeHandler) DeleteAll(c echo.Context) error {
	deleted, err := h.tradeService.DeleteAll(c.Request().Context(), currentUserId(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted": deleted,
	})
}

// SeedDemo 生成演示数据
// POST /api/trades/demo?count=&days=
func (h *TradeHandler) SeedDemo(c echo.Context) error {
	count, err := queryInt(c, "count", 50)
	if err != nil || count <= 0 || count > maxDemoTrades {
		return badRequest(c, fmt.Sprintf("count must be between 1 and %d", maxDemoTrades))
	}
	days, err := queryInt(c, "days", 60)
	if err != nil || days <= 0 {
		return badRequest(c, "days must be positive")
	}

	trades, err := h.tradeService.SeedDemo(c.Request().Context(), currentUserId(c), count, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trades)
}

// Export 导出 CSV
// GET /api/trades/export
func (h *TradeHandler) Export(c echo.Context) error {
	var buf bytes.Buffer
	if _, err := h.exportService.Export(c.Request().Context(), currentUserId(c), &buf); err != nil {
		h.logger.Error("failed to export trades", zap.Error(err))
		return err
	}

	filename := h.exportService.Filename(time.Now())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	trades := g.Group("/trades")

	trades.GET("", h.List)
	trades.POST("", h.Create)
	trades.DELETE("", h.DeleteAll)
	trades.GET("/export", h.Export)
	trades.POST("/demo", h.SeedDemo)
	trades.GET("/:id", h.Get)
	trades.PUT("/:id", h.Update)
	trades.DELETE("/:id", h.Delete)
}
