package nostd

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

const Token = "PipVault-Token"

func GetToken(c echo.Context) string {
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	token := c.Request().Header.Get(Token)
	if len(token) > 0 {
		return token
	}
	token = c.QueryParam(Token)
	if token != "" {
		return token
	}
	cookie, err := c.Cookie(Token)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SafeRedirect 只允许站内相对路径，防止开放重定向
func SafeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return next
}
