// Package handler contains the HTTP handlers of the store API.
//
// HANDLER RESPONSIBILITIES:
//  1. Decode the request (the JSON body; ids travel in the body, not the path)
//  2. Call the matching service
//  3. Write the response through writeJSON / writeError
//
// Handlers hold no business rules. The godoc blocks starting with
// "@Summary" are swag annotations; the docs package is generated from them.
package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// resource is one row of the landing page's endpoint table.
type resource struct {
	Path    string
	Methods string
}

var resources = []resource{
	{"/categories", "GET, POST, PUT, DELETE"},
	{"/games", "GET, POST, PUT, DELETE"},
	{"/developers", "GET, POST"},
	{"/users", "GET, POST, PUT, DELETE"},
	{"/purchases", "GET, POST, PUT, DELETE"},
}

// parsePage parses the shared layout together with one page template.
// Each page gets its own set because pages override the layout's "head"
// block independently.
func parsePage(page string) (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/base.html", "templates/"+page)
}

// HomeHandler serves the landing page.
// Templates are parsed once at startup, not on every request.
type HomeHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

func NewHomeHandler(logger *slog.Logger) (*HomeHandler, error) {
	tmpl, err := parsePage("home.html")
	if err != nil {
		return nil, err
	}
	return &HomeHandler{templates: tmpl, logger: logger}, nil
}

// HandleHome renders a static description of the API with a link to /docs.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":     "Loja de Jogos Online",
		"Resources": resources,
		"DocsURL":   "/docs",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("template", "home"),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
