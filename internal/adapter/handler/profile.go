package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog/internal/domain"
	"blog/internal/usecase"
)

// ProfileHandler lets users rename their own blog.
type ProfileHandler struct {
	getOrCreate *usecase.GetOrCreateProfile
	update      *usecase.UpdateBlogName
	logger      *slog.Logger
}

func NewProfileHandler(getOrCreate *usecase.GetOrCreateProfile, update *usecase.UpdateBlogName, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{getOrCreate: getOrCreate, update: update, logger: logger}
}

func (h *ProfileHandler) Form(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	profile, err := h.getOrCreate.Execute(c.Request().Context(), user.ID)
	if err != nil {
		return mapDomainError(err)
	}
	return c.Render(http.StatusOK, "profile_form", &Page{Title: "My blog", Data: profile})
}

func (h *ProfileHandler) Update(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var in domain.ProfileInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	ctx := c.Request().Context()
	profile, err := h.update.Execute(ctx, user.ID, in)
	if err != nil {
		if fields, ok := fieldErrors(err); ok {
			current, gerr := h.getOrCreate.Execute(ctx, user.ID)
			if gerr != nil {
				return mapDomainError(gerr)
			}
			current.BlogName = in.BlogName
			return c.Render(http.StatusOK, "profile_form", &Page{Title: "My blog", Errors: fields, Data: current})
		}
		return mapDomainError(err)
	}

	return c.Redirect(http.StatusSeeOther, profile.URL())
}
