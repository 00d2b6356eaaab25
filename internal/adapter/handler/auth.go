package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog/config"
	"blog/internal/domain"
	"blog/internal/usecase"
	"blog/middleware"
)

const loginFailedMessage = "Please enter a correct username and password."

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	login   *usecase.Login
	logout  *usecase.Logout
	session config.SessionConfig
	logger  *slog.Logger
}

func NewAuthHandler(login *usecase.Login, logout *usecase.Logout, session config.SessionConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{login: login, logout: logout, session: session, logger: logger}
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	next := safeNext(c.QueryParam("next"))
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return c.Render(http.StatusOK, "login", &Page{Title: "Log in", Data: loginForm{Next: next}})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.Next = safeNext(form.Next)

	result, err := h.login.Execute(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			form.Password = ""
			return c.Render(http.StatusOK, "login", &Page{
				Title:  "Log in",
				Errors: map[string]string{"form": loginFailedMessage},
				Data:   form,
			})
		}
		return mapDomainError(err)
	}

	middleware.SetSessionCookie(c, h.session.CookieName, result.Token,
		int(h.session.TTL.Seconds()), h.session.CookieSecure)
	return c.Redirect(http.StatusSeeOther, form.Next)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.session.CookieName); err == nil {
		if err := h.logout.Execute(c.Request().Context(), cookie.Value); err != nil {
			h.logger.ErrorContext(c.Request().Context(), "logout failed", "error", err)
		}
	}

	middleware.ClearSessionCookie(c, h.session.CookieName)
	return c.Redirect(http.StatusSeeOther, "/")
}
