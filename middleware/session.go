package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"blog/internal/domain"
	"blog/utils/logger"
)

const viewerKey = "viewer"

// SessionResolver maps a cookie value to the logged-in viewer.
type SessionResolver interface {
	Execute(ctx context.Context, token string) (*domain.Viewer, error)
}

// Session resolves the session cookie on every request. Anonymous
// requests pass through; stale cookies are cleared.
func Session(resolver SessionResolver, cookieName string, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			viewer, err := resolver.Execute(ctx, cookie.Value)
			switch {
			case err == nil:
				c.Set(viewerKey, viewer)
				c.SetRequest(c.Request().WithContext(logger.WithUserID(ctx, viewer.User.ID)))
			case errors.Is(err, domain.ErrSessionNotFound),
				errors.Is(err, domain.ErrInvalidSession),
				errors.Is(err, domain.ErrUnauthorized):
				ClearSessionCookie(c, cookieName)
			default:
				// Store outage: serve the request anonymously.
				log.ErrorContext(ctx, "session lookup failed", "error", err)
			}

			return next(c)
		}
	}
}

// RequireAuth redirects anonymous requests to the login page, keeping
// the requested path in ?next=.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				target := "/login/?next=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusSeeOther, target)
			}
			return next(c)
		}
	}
}

// ViewerFrom returns the resolved viewer or nil.
func ViewerFrom(c echo.Context) *domain.Viewer {
	v, _ := c.Get(viewerKey).(*domain.Viewer)
	return v
}

// CurrentUser returns the logged-in user or nil.
func CurrentUser(c echo.Context) *domain.User {
	if v := ViewerFrom(c); v != nil {
		return &v.User
	}
	return nil
}

// SetSessionCookie writes the session cookie.
func SetSessionCookie(c echo.Context, name, value string, maxAge int, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
