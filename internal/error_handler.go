package internal

import (
	"errors"
	"net/http"

	"github.com/dushixiang/pipvault/internal/xe"
	"github.com/dushixiang/pipvault/pkg/nostd"
	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func WithErrorHandler(logger *zap.Logger) func(next echo.HandlerFunc) echo.HandlerFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				var fe nostd.FieldErrors
				if errors.As(err, &fe) {
					return c.JSON(http.StatusBadRequest, orz.Map{
						"code":    xe.ErrInvalidParams.Code,
						"message": err.Error(),
						"fields":  fe,
					})
				}

				var he *echo.HTTPError
				if errors.As(err, &he) {
					return c.JSON(he.Code, orz.Map{
						"code":    he.Code,
						"message": err.Error(),
					})
				}

				var oe *orz.Error
				if errors.As(err, &oe) {
					return c.JSON(statusOf(err), orz.Map{
						"code":    oe.Code,
						"message": err.Error(),
					})
				}

				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.JSON(http.StatusNotFound, orz.Map{
						"code":    xe.ErrNotFound.Code,
						"message": xe.ErrNotFound.Error(),
					})
				}

				logger.Error("api",
					zap.String("method", c.Request().Method),
					zap.String("path", c.Path()),
					zap.Error(err))

				return c.JSON(http.StatusInternalServerError, orz.Map{
					"code":    http.StatusInternalServerError,
					"message": "Something went wrong, please try again",
				})
			}
			return nil
		}
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, xe.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, xe.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, xe.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xe.ErrAccountAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, xe.ErrIncorrectPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
