package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blog/utils/logger"
)

const headerRequestID = "X-Request-ID"

// RequestID propagates or generates an X-Request-ID and stores it on the
// request context for logging.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(headerRequestID)
			if requestID == "" || len(requestID) > 128 {
				requestID = uuid.NewString()
			}

			c.Response().Header().Set(headerRequestID, requestID)

			ctx := logger.WithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
