package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"blog/utils/logger"
)

// RequestLogging writes one record per completed request. Probe and
// metrics endpoints are skipped.
func RequestLogging(base *slog.Logger) echo.MiddlewareFunc {
	contextLogger := logger.NewContextLogger(base)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().URL.Path {
			case "/health", "/ready", "/metrics":
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			ctx := req.Context()
			status := c.Response().Status
			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}

			log := contextLogger.WithContext(ctx)
			switch {
			case status >= 500:
				log.ErrorContext(ctx, "request completed", attrs...)
			case status >= 400:
				log.WarnContext(ctx, "request completed", attrs...)
			default:
				log.InfoContext(ctx, "request completed", attrs...)
			}

			return nil
		}
	}
}
