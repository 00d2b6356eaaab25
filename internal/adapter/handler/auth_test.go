package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(rec interface{ Result() *http.Response }) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	h := newHarness(t)
	h.store.AddUser("alice", "", "", true)
	h.store.AddUser("sleepy", "", "", false)

	t.Run("form", func(t *testing.T) {
		rec := h.get("/login/?next=/post/create/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="/post/create/"`)
	})

	for _, tc := range []struct{ name, username, password string }{
		{"wrong password", "alice", "nope"},
		{"unknown user", "ghost", "ghost"},
		{"inactive user", "sleepy", "sleepy"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := h.post("/login/", url.Values{"username": {tc.username}, "password": {tc.password}}, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "Please enter a correct username and password.")
			assert.Nil(t, sessionCookie(rec))
		})
	}

	t.Run("success sets cookie and redirects home", func(t *testing.T) {
		rec := h.post("/login/", url.Values{"username": {"alice"}, "password": {"alice"}}, "")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)

		page := h.get("/", cookie.Value).Body.String()
		assert.Contains(t, page, "Log out")
	})

	t.Run("next is honoured for local paths only", func(t *testing.T) {
		rec := h.post("/login/", url.Values{"username": {"alice"}, "password": {"alice"}, "next": {"/authors/"}}, "")
		assert.Equal(t, "/authors/", rec.Header().Get("Location"))

		rec = h.post("/login/", url.Values{"username": {"alice"}, "password": {"alice"}, "next": {"//evil.example"}}, "")
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h := newHarness(t)
	alice, _ := h.store.AddUser("alice", "", "", true)
	token := h.tokenFor(t, alice)
	require.Equal(t, 1, h.sessions.Len())

	rec := h.get("/logout/", token)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 0, h.sessions.Len())

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	// The old cookie no longer authenticates.
	rec = h.get("/profile/", token)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestProfileHandler(t *testing.T) {
	h := newHarness(t)
	alice, ap := h.store.AddUser("alice", "", "Old name", true)
	token := h.tokenFor(t, alice)

	rec := h.get("/profile/", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Old name"`)

	rec = h.post("/profile/", url.Values{"blog_name": {"   "}}, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blog_name is required")

	rec = h.post("/profile/", url.Values{"blog_name": {"New name"}}, token)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, fmt.Sprintf("/author/%d/", ap.ID), rec.Header().Get("Location"))
	assert.Contains(t, h.get(ap.URL(), "").Body.String(), "New name")
}

func TestLoginRateLimit(t *testing.T) {
	h := newHarness(t)

	var last int
	for range 1000 {
		last = h.post("/login/", url.Values{"username": {"x"}, "password": {"y"}}, "").Code
		if last == http.StatusTooManyRequests {
			break
		}
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
