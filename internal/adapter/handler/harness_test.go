package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"blog/config"
	"blog/internal/domain"
	"blog/internal/testutil"
	"blog/internal/usecase"
	"blog/middleware"
	"blog/utils/validator"
)

const (
	testBaseURL    = "http://blog.test"
	testCookieName = "blog_session"
)

type countingNotifier struct{ n int }

func (c *countingNotifier) Wake() { c.n++ }

type harness struct {
	e        *echo.Echo
	store    *testutil.Store
	sessions *testutil.SessionStore
	notifier *countingNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := slog.Default()
	store := testutil.NewStore()
	sessions := testutil.NewSessionStore()
	tokens := testutil.TokenCodec{}
	hasher := testutil.FakeHasher{}
	v := validator.New()
	notifier := &countingNotifier{}
	sessionCfg := config.SessionConfig{CookieName: testCookieName, TTL: time.Hour}

	renderer, err := NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)
	e.Use(middleware.Session(usecase.NewResolveSession(store, sessions, tokens, logger), testCookieName, logger))

	limiter := middleware.NewRateLimiter(600, 100)
	t.Cleanup(limiter.Stop)

	RegisterRoutes(e, Handlers{
		Posts: NewPostHandler(
			usecase.NewListPublishedPosts(store, logger),
			usecase.NewViewPost(store, store, logger),
			usecase.NewGetOwnPost(store, store, logger),
			usecase.NewCreatePost(store, store, store, v, logger),
			usecase.NewUpdatePost(store, store, store, v, logger),
			usecase.NewDeletePost(store, store, store, logger),
			usecase.NewPublishPost(store, store, store, store, store, testBaseURL, logger),
			notifier,
			logger,
		),
		Authors: NewAuthorHandler(
			usecase.NewListAuthors(store, store, logger),
			usecase.NewGetAuthor(store, store, logger),
			usecase.NewListAuthorPosts(store, logger),
			usecase.NewListFeed(store, logger),
			usecase.NewSubscribe(store, store, store, logger),
			usecase.NewUnsubscribe(store, store, store, logger),
			logger,
		),
		Profile: NewProfileHandler(
			usecase.NewGetOrCreateProfile(store, logger),
			usecase.NewUpdateBlogName(store, store, v, logger),
			logger,
		),
		Auth: NewAuthHandler(
			usecase.NewLogin(store, hasher, sessions, tokens, time.Hour, logger),
			usecase.NewLogout(sessions, tokens, logger),
			sessionCfg,
			logger,
		),
		Health: NewHealthHandler(nil),
	}, limiter.Middleware())

	return &harness{e: e, store: store, sessions: sessions, notifier: notifier}
}

// tokenFor opens a session for the user and returns its cookie value.
func (h *harness) tokenFor(t *testing.T, user domain.User) string {
	t.Helper()
	sess, err := h.sessions.CreateSession(context.Background(), user.ID, time.Hour)
	require.NoError(t, err)
	token, err := testutil.TokenCodec{}.Issue(*sess)
	require.NoError(t, err)
	return token
}

func (h *harness) get(target, token string) *httptest.ResponseRecorder {
	return h.do(http.MethodGet, target, nil, token)
}

func (h *harness) post(target string, form url.Values, token string) *httptest.ResponseRecorder {
	return h.do(http.MethodPost, target, form, token)
}

func (h *harness) do(method, target string, form url.Values, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	}
	req.RemoteAddr = "192.0.2.1:1234"

	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
