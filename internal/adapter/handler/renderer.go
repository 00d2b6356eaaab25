package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"blog/internal/domain"
	"blog/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

// Page is the data every template receives. Data holds the page-specific
// value.
type Page struct {
	Title  string
	Viewer *domain.User
	CSRF   string
	Path   string
	Errors map[string]string
	Data   any
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the layout once at startup.
func NewRenderer() (*Renderer, error) {
	ugc := bluemonday.UGCPolicy()
	strict := bluemonday.StrictPolicy()

	funcs := template.FuncMap{
		"formatDate": formatDate,
		"content": func(s string) template.HTML {
			return renderContent(ugc, s)
		},
		"excerpt": func(s string, n int) string {
			return excerpt(html.UnescapeString(strict.Sanitize(s)), n)
		},
	}

	layout, err := template.New("root").Funcs(funcs).ParseFS(templateFS, layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		name := f.Name()
		if "templates/"+name == layoutTemplate {
			continue
		}
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = t
	}

	return &Renderer{pages: pages}, nil
}

// Render implements echo.Renderer. Viewer, CSRF token and path are filled
// from the request context.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	page, ok := data.(*Page)
	if !ok {
		page = &Page{Data: data}
	}
	if c != nil {
		page.Viewer = middleware.CurrentUser(c)
		if token, ok := c.Get(csrfContextKey).(string); ok {
			page.CSRF = token
		}
		page.Path = c.Request().URL.Path
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func formatDate(v any) string {
	var t time.Time
	switch tv := v.(type) {
	case time.Time:
		t = tv
	case *time.Time:
		if tv == nil {
			return ""
		}
		t = *tv
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("02 Jan 2006, 15:04")
}

// renderContent sanitizes post content and turns blank-line separated
// blocks into paragraphs.
func renderContent(policy *bluemonday.Policy, s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	for _, block := range strings.Split(s, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(policy.Sanitize(block), "\n", "<br>\n"))
		b.WriteString("</p>\n")
	}
	return template.HTML(b.String())
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
