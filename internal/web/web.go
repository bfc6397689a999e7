// Package web holds the embedded page templates and static assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"

	"organizer-portal/internal/format"
	"organizer-portal/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutFile = "templates/layout.html"

// Page is the data every template receives. Data carries the page's own view.
type Page struct {
	Title     string
	Nav       string
	Organizer models.Organizer
	Unread    int
	Notice    string
	Public    bool
	Data      any
}

// Renderer executes one template set per page; each set is the shared
// layout plus the page file, which defines "content".
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(currency string) (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		tmpl, err := template.New(path.Base(file)).Funcs(format.Funcs(currency)).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[path.Base(file)] = tmpl
	}
	return r, nil
}

// Render writes the page to w. Output is buffered so a template error never
// leaves a half-written page behind.
func (r *Renderer) Render(w io.Writer, page string, data Page) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the files under static/ at the router's mount point.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// EmbedScript is the loader third-party sites include with the script snippet.
func EmbedScript() []byte {
	b, err := staticFS.ReadFile("static/embed.js")
	if err != nil {
		panic(err)
	}
	return b
}
