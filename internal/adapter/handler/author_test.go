package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthorHandler_List(t *testing.T) {
	h := newHarness(t)
	alice, ap := h.store.AddUser("alice", "", "Alice Writes", true)
	_, bp := h.store.AddUser("bob", "", "", true)
	h.store.Subscribe(ap.ID, bp.ID)

	anon := h.get("/authors/", "")
	assert.Equal(t, http.StatusOK, anon.Code)
	assert.Contains(t, anon.Body.String(), "Alice Writes")
	assert.NotContains(t, anon.Body.String(), "Subscribe")

	rec := h.get("/authors/", h.tokenFor(t, alice))
	body := rec.Body.String()
	assert.Contains(t, body, fmt.Sprintf("/author/%d/unsubscribe/", bp.ID))
	assert.NotContains(t, body, fmt.Sprintf("/author/%d/subscribe/", ap.ID))
	assert.Contains(t, body, fmt.Sprintf("/ribbon/%d/", ap.ID))
}

func TestAuthorHandler_Detail(t *testing.T) {
	h := newHarness(t)
	_, ap := h.store.AddUser("alice", "", "Alice Writes", true)

	rec := h.get(ap.URL(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice Writes")
	assert.Contains(t, rec.Body.String(), "0 subscribers")

	assert.Equal(t, http.StatusNotFound, h.get("/author/77/", "").Code)
}

func TestAuthorHandler_BlogAndRibbon(t *testing.T) {
	h := newHarness(t)
	_, ap := h.store.AddUser("alice", "", "Alice Writes", true)
	bob, bp := h.store.AddUser("bob", "", "", true)
	h.store.AddPost(ap.ID, "Alice draft", nil)
	read := h.store.AddPost(ap.ID, "Alice live", ptrTime(time.Now()))
	h.store.AddPost(bp.ID, "Bob live", ptrTime(time.Now()))

	blog := h.get(ap.BlogURL(), "").Body.String()
	assert.Contains(t, blog, "Alice draft")
	assert.Contains(t, blog, "Alice live")
	assert.NotContains(t, blog, "Bob live")

	token := h.tokenFor(t, bob)
	h.get(read.URL(), token)

	ribbon := h.get(fmt.Sprintf("/ribbon/%d/", bp.ID), token).Body.String()
	assert.Contains(t, ribbon, "Alice live")
	assert.Contains(t, ribbon, "(read)")
	assert.NotContains(t, ribbon, "Bob live")

	assert.Equal(t, http.StatusOK, h.get("/author/99/blog/", "").Code)
}

func TestAuthorHandler_Subscriptions(t *testing.T) {
	h := newHarness(t)
	alice, ap := h.store.AddUser("alice", "", "", true)
	_, bp := h.store.AddUser("bob", "", "Bob's", true)
	token := h.tokenFor(t, alice)
	subscribe := fmt.Sprintf("/author/%d/subscribe/", bp.ID)

	t.Run("confirmation page", func(t *testing.T) {
		rec := h.get(subscribe, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "bob: Bob&#39;s")
	})

	t.Run("anonymous is sent to login", func(t *testing.T) {
		assert.Equal(t, http.StatusSeeOther, h.post(subscribe, url.Values{}, "").Code)
		assert.Equal(t, 0, h.store.SubscriptionCount())
	})

	t.Run("subscribe twice keeps one edge", func(t *testing.T) {
		for range 2 {
			rec := h.post(subscribe, url.Values{}, token)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/authors/", rec.Header().Get("Location"))
		}
		assert.Equal(t, 1, h.store.SubscriptionCount())
	})

	t.Run("self subscription is rejected", func(t *testing.T) {
		self := fmt.Sprintf("/author/%d/subscribe/", ap.ID)
		assert.Equal(t, http.StatusBadRequest, h.get(self, token).Code)
		assert.Equal(t, http.StatusBadRequest, h.post(self, url.Values{}, token).Code)
		assert.Equal(t, 1, h.store.SubscriptionCount())
	})

	t.Run("unknown author", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, h.post("/author/500/subscribe/", url.Values{}, token).Code)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		rec := h.post(fmt.Sprintf("/author/%d/unsubscribe/", bp.ID), url.Values{}, token)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, 0, h.store.SubscriptionCount())
	})
}
