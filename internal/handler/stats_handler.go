package handler

import (
	"net/http"
	"time"

	"github.com/dushixiang/pipvault/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StatsHandler 统计接口，查询参数 mode 覆盖用户偏好
type StatsHandler struct {
	logger       *zap.Logger
	statsService *service.StatsService
}

func NewStatsHandler(logger *zap.Logger, statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		logger:       logger,
		statsService: statsService,
	}
}

func (h *StatsHandler) query(c echo.Context) service.Query {
	filter, period := parseFilter(c)
	return service.Query{Mode: c.QueryParam("mode"), Filter: filter, Period: period}
}

// respond 统一处理查询参数和错误
func respond(h *StatsHandler, c echo.Context, fn func(q service.Query) (interface{}, error)) error {
	result, err := fn(h.query(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Dashboard GET /api/stats/dashboard
func (h *StatsHandler) Dashboard(c echo.Context) error {
	ctx, userId := c.Request().Context(), currentUserId(c)
	return respond(h, c, func(q service.Query) (interface{}, error) {
		return h.statsService.Dashboard(ctx, userId, q)
	})
}

// Summary GET /api/stats/summary
func (h *StatsHandler) Summary(c echo.Context) error {
	ctx, userId := c.Request().Context(), currentUserId(c)
	return respond(h, c, func(q service.Query) (interface{}, error) {
		return h.statsService.Summary(ctx, userId, q)
	})
}

// Equity GET /api/stats/equity
func (h *StatsHandler) Equity(c echo.Context) error {
	ctx, userId := c.Request().Context(), currentUserId(c)
	return respond(h, c, func(q service.Query) (interface{}, error) {
		return h.statsService.Equity(ctx, userId, q)
	})
}

// Setups GET /api/stats/setups
func (h *StatsHandler) Setups(c echo.Context) error {
	ctx, userId := c.Request().Context(), currentUserId(c)
	return respond(h, c, func(q service.Query) (interface{}, error) {
		return h.statsService.Setups(ctx, userId, q)
	})
}

// Emotions GET /api/stats/emotions
func (h *StatsHandler) Emotions(c echo.Context) error {
	ctx, userId := c.Request().Context(), currentUserId(c)
	return respond(h, c, func(q service.Query) (interface{}, error) {
		return h.statsService.Emotions(ctx, userId, q)
	})
}

// Sessions GET /api/stats/sessions
func (h *StatsHandler) Sessions(c echo.Context) error {
	ctx, userId := c.Request().Context(), currentUserId(c)
	return respond(h, c, func(q service.Query) (interface{}, error) {
		return h.statsService.Sessions(ctx, userId, q)
	})
}

// Pairs GET /api/stats/pairs
func (h *StatsHandler) Pairs(c echo.Context) error {
	ctx, userId := c.Request().Context(), currentUserId(c)
	return respond(h, c, func(q service.Query) (interface{}, error) {
		return h.statsService.Pairs(ctx, userId, q)
	})
}

// Calendar 月历
// GET /api/stats/calendar?year=2024&month=3
func (h *StatsHandler) Calendar(c echo.Context) error {
	ctx, userId := c.Request().Context(), currentUserId(c)
	year, err := queryInt(c, "year", 0)
	if err != nil {
		return badRequest(c, "Invalid year")
	}
	month, err := queryInt(c, "month", 0)
	if err != nil {
		return badRequest(c, "Invalid month")
	}
	return respond(h, c, func(q service.Query) (interface{}, error) {
		return h.statsService.Calendar(ctx, userId, q, year, time.Month(month))
	})
}

func (h *StatsHandler) RegisterRoutes(g *echo.Group) {
	s := g.Group("/stats")

	s.GET("/dashboard", h.Dashboard)
	s.GET("/summary", h.Summary)
	s.GET("/equity", h.Equity)
	s.GET("/setups", h.Setups)
	s.GET("/emotions", h.Emotions)
	s.GET("/sessions", h.Sessions)
	s.GET("/pairs", h.Pairs)
	s.GET("/calendar", h.Calendar)
}
