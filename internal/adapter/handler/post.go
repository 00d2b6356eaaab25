package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog/internal/domain"
	"blog/internal/usecase"
	"blog/middleware"
)

// Notifier is poked after a post is published so queued mail goes out
// without waiting for the next poll.
type Notifier interface {
	Wake()
}

// PostHandler serves post pages and the draft/publish lifecycle.
type PostHandler struct {
	list    *usecase.ListPublishedPosts
	view    *usecase.ViewPost
	getOwn  *usecase.GetOwnPost
	create  *usecase.CreatePost
	update  *usecase.UpdatePost
	delete  *usecase.DeletePost
	publish *usecase.PublishPost
	notify  Notifier
	logger  *slog.Logger
}

func NewPostHandler(
	list *usecase.ListPublishedPosts,
	view *usecase.ViewPost,
	getOwn *usecase.GetOwnPost,
	create *usecase.CreatePost,
	update *usecase.UpdatePost,
	del *usecase.DeletePost,
	publish *usecase.PublishPost,
	notify Notifier,
	logger *slog.Logger,
) *PostHandler {
	return &PostHandler{
		list:    list,
		view:    view,
		getOwn:  getOwn,
		create:  create,
		update:  update,
		delete:  del,
		publish: publish,
		notify:  notify,
		logger:  logger,
	}
}

// Index lists published posts, newest first.
func (h *PostHandler) Index(c echo.Context) error {
	posts, err := h.list.Execute(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}
	return c.Render(http.StatusOK, "post_list", &Page{Title: "Posts", Data: posts})
}

// Detail shows a post and records a read receipt for logged-in viewers.
func (h *PostHandler) Detail(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.view.Execute(c.Request().Context(), id, middleware.CurrentUser(c))
	if err != nil {
		return mapDomainError(err)
	}
	return c.Render(http.StatusOK, "post_detail", &Page{Title: post.Title, Data: post})
}

func (h *PostHandler) CreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, "post_form", &Page{Title: "New post", Data: domain.PostInput{}})
}

func (h *PostHandler) Create(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var in domain.PostInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	post, err := h.create.Execute(c.Request().Context(), user.ID, in)
	if err != nil {
		if fields, ok := fieldErrors(err); ok {
			return c.Render(http.StatusOK, "post_form", &Page{Title: "New post", Errors: fields, Data: in})
		}
		return mapDomainError(err)
	}

	return c.Redirect(http.StatusSeeOther, post.Author.BlogURL())
}

func (h *PostHandler) UpdateForm(c echo.Context) error {
	post, err := h.ownPost(c)
	if err != nil {
		return err
	}

	in := domain.PostInput{Title: post.Title, Content: post.Content}
	return c.Render(http.StatusOK, "post_form", &Page{Title: "Edit post", Data: in})
}

func (h *PostHandler) Update(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var in domain.PostInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	post, err := h.update.Execute(c.Request().Context(), user.ID, id, in)
	if err != nil {
		if fields, ok := fieldErrors(err); ok {
			return c.Render(http.StatusOK, "post_form", &Page{Title: "Edit post", Errors: fields, Data: in})
		}
		return mapDomainError(err)
	}

	return c.Redirect(http.StatusSeeOther, post.URL())
}

func (h *PostHandler) DeleteConfirm(c echo.Context) error {
	post, err := h.ownPost(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "confirm", &Page{Title: "Delete post", Data: confirmation{
		Question: fmt.Sprintf("Delete %q? This cannot be undone.", post.Title),
		Action:   "Delete",
		Cancel:   post.URL(),
	}})
}

func (h *PostHandler) Delete(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.delete.Execute(c.Request().Context(), user.ID, id); err != nil {
		return mapDomainError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *PostHandler) PublishConfirm(c echo.Context) error {
	post, err := h.ownPost(c)
	if err != nil {
		return err
	}

	question := fmt.Sprintf("Publish %q? Your subscribers will be notified by email.", post.Title)
	if post.IsPublished() {
		question = fmt.Sprintf("%q is already published.", post.Title)
	}
	return c.Render(http.StatusOK, "confirm", &Page{Title: "Publish post", Data: confirmation{
		Question: question,
		Action:   "Publish",
		Cancel:   post.URL(),
	}})
}

func (h *PostHandler) Publish(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.publish.Execute(c.Request().Context(), user.ID, id); err != nil {
		return mapDomainError(err)
	}

	if h.notify != nil {
		h.notify.Wake()
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *PostHandler) ownPost(c echo.Context) (*domain.Post, error) {
	user, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}

	post, err := h.getOwn.Execute(c.Request().Context(), user.ID, id)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return post, nil
}
