package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/portfolio/backend/internal/storage"
)

// PageHandler renders the portfolio page and serves static assets.
type PageHandler struct {
	templatePath string
	files        storage.Storage
}

// NewPageHandler creates a PageHandler. The template at templatePath may
// call {{static "css/site.css"}} to link assets from files.
func NewPageHandler(templatePath string, files storage.Storage) *PageHandler {
	return &PageHandler{templatePath: templatePath, files: files}
}

// Index handles GET /. The template is parsed on every request so edits
// show up without a restart.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.New("index.html").
		Funcs(template.FuncMap{"static": h.files.URL}).
		ParseFiles(h.templatePath)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load page template", "path", h.templatePath, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to render page", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Static returns a handler serving the storage root under prefix.
// Directory listings are not served.
func (h *PageHandler) Static(prefix string) http.Handler {
	fileServer := http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.FileServerFS(h.files.FS()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

// NotFound writes the JSON 404 body used for every unknown route.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}
