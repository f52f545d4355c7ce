package echohttp

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// request logging middleware, wired before the recover middleware so
// panicking requests still get a log line
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()

			err := next(c)

			slog.Info("handled request",
				"method", c.Request().Method,
				"route", c.Path(),
				"url", c.Request().URL,
				"remoteIp", c.RealIP(),
				"status", c.Response().Status,
				"duration", time.Since(now))
			return err
		}
	}
}
