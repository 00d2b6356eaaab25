package handler

import (
	"github.com/labstack/echo/v4"

	"blog/middleware"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Posts   *PostHandler
	Authors *AuthorHandler
	Profile *ProfileHandler
	Auth    *AuthHandler
	Health  *HealthHandler
}

// RegisterRoutes mounts the site. loginLimit, when set, guards login
// attempts.
func RegisterRoutes(e *echo.Echo, h Handlers, loginLimit echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.GET("/ready", h.Health.Ready)

	e.GET("/", h.Posts.Index)
	e.GET("/post/:id/", h.Posts.Detail)
	e.GET("/authors/", h.Authors.List)
	e.GET("/author/:id/", h.Authors.Detail)
	e.GET("/author/:id/blog/", h.Authors.Blog)
	e.GET("/ribbon/:author_id/", h.Authors.Ribbon)

	e.GET("/login/", h.Auth.LoginForm)
	var loginMW []echo.MiddlewareFunc
	if loginLimit != nil {
		loginMW = append(loginMW, loginLimit)
	}
	e.POST("/login/", h.Auth.Login, loginMW...)
	e.GET("/logout/", h.Auth.Logout)

	auth := middleware.RequireAuth()

	e.GET("/post/create/", h.Posts.CreateForm, auth)
	e.POST("/post/create/", h.Posts.Create, auth)
	e.GET("/post/:id/update/", h.Posts.UpdateForm, auth)
	e.POST("/post/:id/update/", h.Posts.Update, auth)
	e.GET("/post/:id/delete/", h.Posts.DeleteConfirm, auth)
	e.POST("/post/:id/delete/", h.Posts.Delete, auth)
	e.GET("/post/:id/publish/", h.Posts.PublishConfirm, auth)
	e.POST("/post/:id/publish/", h.Posts.Publish, auth)

	e.GET("/author/:id/subscribe/", h.Authors.SubscribeConfirm, auth)
	e.POST("/author/:id/subscribe/", h.Authors.Subscribe, auth)
	e.GET("/author/:id/unsubscribe/", h.Authors.UnsubscribeConfirm, auth)
	e.POST("/author/:id/unsubscribe/", h.Authors.Unsubscribe, auth)

	e.GET("/profile/", h.Profile.Form, auth)
	e.POST("/profile/", h.Profile.Update, auth)
}
