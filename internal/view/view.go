// Package view renders the HTML pages through echo's Renderer interface.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/middleware"
)

//go:embed templates
var templateFS embed.FS

// Page is what every template receives.  Data holds the handler's values.
type Page struct {
	Title   string
	Flashes []string
	Path    string
	Data    any
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// Funcs are the helpers available in every template.
var Funcs = template.FuncMap{
	"datetime": FormatDateTime,
	"join":     strings.Join,
	"genres":   func() []string { return form.Genres },
	"states":   func() []string { return form.States },
	"has": func(list []string, v string) bool {
		for _, s := range list {
			if s == v {
				return true
			}
		}
		return false
	},
}

// New parses the embedded templates.  Each file under pages/, forms/ and
// errors/ becomes a page named by its path without extension, such as
// "pages/home" or "forms/venue".
func New() (*Renderer, error) {
	layout, err := template.New("layout").Funcs(Funcs).ParseFS(templateFS, "templates/layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, dir := range []string{"pages", "forms", "errors"} {
		files, err := fs.Glob(templateFS, "templates/"+dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			t, err := layout.Clone()
			if err != nil {
				return nil, err
			}
			if _, err := t.ParseFS(templateFS, f); err != nil {
				return nil, fmt.Errorf("parse %s: %w", f, err)
			}
			name := dir + "/" + strings.TrimSuffix(path.Base(f), ".html")
			r.pages[name] = t
		}
	}
	return r, nil
}

// Render implements echo.Renderer.  data may be a Page or any value, which
// is then wrapped into one.  Flash messages of the request are attached.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	p, ok := data.(Page)
	if !ok {
		p = Page{Data: data}
	}
	if c != nil {
		p.Flashes = append(p.Flashes, middleware.FlashMessages(c)...)
		p.Path = c.Request().URL.Path
	}
	return t.ExecuteTemplate(w, "base", p)
}

// Date layouts for the datetime template helper.
const (
	LayoutFull   = "Monday January, 2, 2006 at 3:04PM"
	LayoutMedium = "Mon 01, 02, 2006 3:04PM"
)

// FormatDateTime formats t as "full" or "medium" (the default).
func FormatDateTime(t time.Time, format string) string {
	if t.IsZero() {
		return ""
	}
	switch format {
	case "full":
		return t.Format(LayoutFull)
	default:
		return t.Format(LayoutMedium)
	}
}
