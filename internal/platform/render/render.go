// Copyright (c) 2026 Folio. All rights reserved.

/*
Package render produces the HTML responses for the server-rendered catalog.

It wraps html/template with an embedded template set, so the binary is
self-contained in both the long-running and Lambda deployments (no view
directory to resolve at runtime).

# Failure Semantics

Pages are executed into a buffer before any byte reaches the client. A
template failure therefore never emits a half-rendered page: the caller
receives an error and degrades to a redirect.
*/
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer is the contract handlers use to produce HTML pages.
//
// Implementations other than [TemplateRenderer] exist only in tests.
type Renderer interface {
	// Page writes the named page with the given status code and view data.
	Page(writer http.ResponseWriter, status int, name string, data any) error
}

// TemplateRenderer renders embedded html/template pages inside a shared layout.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

// pageNames lists every renderable page. Each combines with the layout.
var pageNames = []string{
	"books_index.html",
	"books_new.html",
	"books_edit.html",
	"books_show.html",
	"genres_index.html",
}

// funcs are the helpers available inside templates.
var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},

	// coverURL marks a cover data URI as a safe URL. html/template rewrites
	// non-http(s) schemes in src attributes to "#ZgotmplZ" otherwise. Only
	// server-derived data URIs may pass through here, never user input.
	"coverURL": func(s string) template.URL {
		return template.URL(s)
	},
}

// New parses the embedded template set.
//
// Parsing happens once at startup; a malformed template is a boot failure,
// not a per-request one.
func New() (*TemplateRenderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").
			Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/book_form.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("render: failed to parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &TemplateRenderer{pages: pages}, nil
}

// Page implements [Renderer].
func (renderer *TemplateRenderer) Page(writer http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := renderer.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}

	// Buffer first so a mid-execution failure never reaches the client.
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render: failed to execute %s: %w", name, err)
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, err := buf.WriteTo(writer)
	return err
}
