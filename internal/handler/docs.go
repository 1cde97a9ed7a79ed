package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/swaggo/swag"
)

// specURL is where the Swagger UI page fetches the document from.
const specURL = "/docs?type=json"

// DocsHandler serves the API documentation.
//
// The Swagger document is registered with swag by the generated docs
// package at init time (internal/server imports it). A request only
// reads the registered document; nothing is generated per request.
type DocsHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

func NewDocsHandler(logger *slog.Logger) (*DocsHandler, error) {
	tmpl, err := parsePage("swagger.html")
	if err != nil {
		return nil, err
	}
	return &DocsHandler{templates: tmpl, logger: logger}, nil
}

// HandleDocs returns the Swagger 2.0 JSON document for ?type=json and the
// Swagger UI page otherwise.
func (h *DocsHandler) HandleDocs(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("type") == "json" {
		h.serveSpec(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]any{
		"Title":   "Loja de Jogos Online - API",
		"SpecURL": specURL,
	}
	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("template", "swagger"),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *DocsHandler) serveSpec(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		// No docs package was linked into the binary.
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		h.logger.Error("failed to write swagger document", slog.String("error", err.Error()))
	}
}
