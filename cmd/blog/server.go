package main

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"blog/config"
	"blog/di"
	"blog/internal/adapter/handler"
	"blog/middleware"
)

const csrfCookieName = "_csrf"

func isProbe(path string) bool {
	return path == "/health" || path == "/ready" || path == "/metrics"
}

// newServer assembles the echo instance. The returned limiter must be
// stopped when the server goes away.
func newServer(cfg *config.Config, app *di.ApplicationComponents, logger *slog.Logger, tracing bool, serviceName string) (*echo.Echo, *middleware.RateLimiter, error) {
	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	if tracing {
		e.Use(otelecho.Middleware(serviceName))
	}
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogging(logger))
	e.Use(middleware.SecurityHeaders(cfg.Session.CookieSecure))
	e.Use(echomw.BodyLimit(cfg.Server.BodyLimit))
	e.Use(echomw.CSRFWithConfig(echomw.CSRFConfig{
		Skipper:        func(c echo.Context) bool { return isProbe(c.Request().URL.Path) },
		TokenLookup:    "form:csrf",
		ContextKey:     "csrf",
		CookieName:     csrfCookieName,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	e.Use(middleware.Session(app.ResolveSession, cfg.Session.CookieName, logger))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)
	handler.RegisterRoutes(e, app.Handlers, limiter.Middleware())

	return e, limiter, nil
}
