package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"blog/internal/domain"
	"blog/middleware"
	"blog/utils/validator"
)

// csrfContextKey matches echo's CSRF middleware default.
const csrfContextKey = "csrf"

func parseID(c echo.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "page not found")
	}
	return id, nil
}

// requireUser returns the logged-in user. Routes using it sit behind
// middleware.RequireAuth, so a nil user is a wiring error.
func requireUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}

func fieldErrors(err error) (map[string]string, bool) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return verr.Errors, true
	}
	return nil, false
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

type confirmation struct {
	Question string
	Action   string
	Cancel   string
}
