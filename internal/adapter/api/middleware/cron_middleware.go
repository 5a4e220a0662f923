package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireCronSecret gates scheduled-job endpoints behind a shared secret
// header. An empty configured secret disables the endpoints entirely.
func RequireCronSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Cron endpoints are disabled")
			}
			provided := c.Request().Header.Get("X-Cron-Secret")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid cron secret")
			}
			return next(c)
		}
	}
}
