package handler

import (
	"bytes"
	"testing"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_ParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range []string{
		"post_list", "post_detail", "post_form", "confirm", "authors", "author",
		"author_blog", "ribbon", "login", "profile_form", "error",
	} {
		assert.Contains(t, r.pages, name)
	}
	assert.NotContains(t, r.pages, "layout")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "missing", &Page{}, nil))
}

func TestRenderContent(t *testing.T) {
	policy := bluemonday.UGCPolicy()

	got := string(renderContent(policy, "first line\nsecond line\r\n\r\nnext <script>x()</script><em>para</em>"))

	assert.Equal(t, "<p>first line<br>\nsecond line</p>\n<p>next <em>para</em></p>\n", got)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short text", excerpt("short   text", 20))
	assert.Equal(t, "abcde…", excerpt("abcdefgh", 5))
	assert.Equal(t, "привет…", excerpt("привет мир", 6))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, "09 Mar 2024, 14:05", formatDate(ts))
	assert.Equal(t, "09 Mar 2024, 14:05", formatDate(&ts))
	assert.Empty(t, formatDate((*time.Time)(nil)))
	assert.Empty(t, formatDate(time.Time{}))
	assert.Empty(t, formatDate("nope"))
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                     "/",
		"/authors/":            "/authors/",
		"//evil.example":       "/",
		"/\\evil.example":      "/",
		"https://evil.example": "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeNext(in), in)
	}
}
