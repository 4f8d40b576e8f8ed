package handler

import (
	"net/http"
	"strconv"

	"github.com/dushixiang/pipvault/internal/middleware"
	"github.com/dushixiang/pipvault/internal/service"
	"github.com/dushixiang/pipvault/pkg/stats"
	"github.com/labstack/echo/v4"
)

func currentUserId(c echo.Context) string {
	userId, _ := c.Get(middleware.ContextUserID).(string)
	return userId
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error": message,
	})
}

// parseFilter 解析 setup/emotion/session/pair/account_type，from/to 交给 service 按用户时区解析
func parseFilter(c echo.Context) (stats.Filter, service.Period) {
	f := stats.Filter{
		Setup:       c.QueryParam("setup"),
		Emotion:     c.QueryParam("emotion"),
		Session:     c.QueryParam("session"),
		Pair:        c.QueryParam("pair"),
		AccountType: c.QueryParam("account_type"),
	}
	return f, service.Period{From: c.QueryParam("from"), To: c.QueryParam("to")}
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	s := c.QueryParam(name)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
