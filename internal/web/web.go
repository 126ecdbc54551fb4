// Package web holds the server-rendered pages and static assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Page names, one per template.
const (
	PageHome      = "home"
	PageDesign    = "design"
	PageOrderForm = "orderForm"
)

// Renderer executes page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{PageHome, PageDesign, PageOrderForm} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q not defined", name)
		}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named page with the given status. The page is rendered
// into memory first so a failing template never sends a partial body.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static returns the asset tree served at the site root (/styles.css,
// /images/...).
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
