package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog/internal/domain"
	"blog/utils/validator"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
func mapDomainError(err error) *echo.HTTPError {
	var verr *validator.ValidationError

	switch {
	case errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "page not found")

	case errors.Is(err, domain.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "you are not allowed to do that")

	case errors.Is(err, domain.ErrSelfSubscription):
		return echo.NewHTTPError(http.StatusBadRequest, "you cannot subscribe to your own blog")

	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid input")

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrInvalidSession),
		errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}

type errorPage struct {
	Code    int
	Message string
}

// NewHTTPErrorHandler renders errors with the error page template.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			he = mapDomainError(err)
		}

		ctx := c.Request().Context()
		if he.Code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, "request failed", "path", c.Request().URL.Path, "error", err)
		}

		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			message = m
		}
		if he.Code >= http.StatusInternalServerError {
			message = http.StatusText(he.Code)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(he.Code)
			return
		}

		page := &Page{Title: http.StatusText(he.Code), Data: errorPage{Code: he.Code, Message: message}}
		if rerr := c.Render(he.Code, "error", page); rerr != nil {
			logger.ErrorContext(ctx, "failed to render error page", "error", rerr)
			_ = c.String(he.Code, message)
		}
	}
}
