package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog/internal/domain"
	"blog/internal/usecase"
	"blog/middleware"
)

// AuthorHandler serves author pages, feeds and subscriptions.
type AuthorHandler struct {
	listAuthors *usecase.ListAuthors
	getAuthor   *usecase.GetAuthor
	authorPosts *usecase.ListAuthorPosts
	feed        *usecase.ListFeed
	subscribe   *usecase.Subscribe
	unsubscribe *usecase.Unsubscribe
	logger      *slog.Logger
}

func NewAuthorHandler(
	listAuthors *usecase.ListAuthors,
	getAuthor *usecase.GetAuthor,
	authorPosts *usecase.ListAuthorPosts,
	feed *usecase.ListFeed,
	subscribe *usecase.Subscribe,
	unsubscribe *usecase.Unsubscribe,
	logger *slog.Logger,
) *AuthorHandler {
	return &AuthorHandler{
		listAuthors: listAuthors,
		getAuthor:   getAuthor,
		authorPosts: authorPosts,
		feed:        feed,
		subscribe:   subscribe,
		unsubscribe: unsubscribe,
		logger:      logger,
	}
}

func (h *AuthorHandler) List(c echo.Context) error {
	dir, err := h.listAuthors.Execute(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.Render(http.StatusOK, "authors", &Page{Title: "Authors", Data: dir})
}

func (h *AuthorHandler) Detail(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	author, err := h.getAuthor.Execute(c.Request().Context(), id, middleware.CurrentUser(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.Render(http.StatusOK, "author", &Page{Title: author.Username, Data: author})
}

// Blog lists every post by the author, drafts included.
func (h *AuthorHandler) Blog(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	posts, err := h.authorPosts.Execute(ctx, id)
	if err != nil {
		return mapDomainError(err)
	}

	title := "Blog"
	author, err := h.getAuthor.Execute(ctx, id, nil)
	switch {
	case err == nil:
		title = author.Username
		if author.BlogName != "" {
			title = author.BlogName
		}
	case !errors.Is(err, domain.ErrProfileNotFound):
		return mapDomainError(err)
	}

	return c.Render(http.StatusOK, "author_blog", &Page{Title: title, Data: posts})
}

// Ribbon lists posts by everyone except the given author, flagged with
// the viewer's read state.
func (h *AuthorHandler) Ribbon(c echo.Context) error {
	id, err := parseID(c, "author_id")
	if err != nil {
		return err
	}

	entries, err := h.feed.Execute(c.Request().Context(), id, middleware.CurrentUser(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.Render(http.StatusOK, "ribbon", &Page{Title: "Feed", Data: entries})
}

func (h *AuthorHandler) SubscribeConfirm(c echo.Context) error {
	return h.confirm(c, "Subscribe", "Subscribe to %s? You will get an email for every new post.")
}

func (h *AuthorHandler) Subscribe(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.subscribe.Execute(c.Request().Context(), user.ID, id); err != nil {
		return mapDomainError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/authors/")
}

func (h *AuthorHandler) UnsubscribeConfirm(c echo.Context) error {
	return h.confirm(c, "Unsubscribe", "Unsubscribe from %s?")
}

func (h *AuthorHandler) Unsubscribe(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.unsubscribe.Execute(c.Request().Context(), user.ID, id); err != nil {
		return mapDomainError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/authors/")
}

func (h *AuthorHandler) confirm(c echo.Context, action, question string) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	author, err := h.getAuthor.Execute(c.Request().Context(), id, user)
	if err != nil {
		return mapDomainError(err)
	}
	if author.UserID == user.ID {
		return mapDomainError(domain.ErrSelfSubscription)
	}

	return c.Render(http.StatusOK, "confirm", &Page{Title: action, Data: confirmation{
		Question: fmt.Sprintf(question, author.String()),
		Action:   action,
		Cancel:   "/authors/",
	}})
}
