package handler

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/storage"
)

// ResumeHandler serves the resume PDF and records each download.
type ResumeHandler struct {
	files             storage.Storage
	downloads         service.DownloadService
	key               string
	downloadName      string
	trustedProxyCount int
}

// NewResumeHandler creates a ResumeHandler serving key from files under the
// attachment name downloadName.
func NewResumeHandler(files storage.Storage, downloads service.DownloadService, key, downloadName string, trustedProxyCount int) *ResumeHandler {
	return &ResumeHandler{
		files:             files,
		downloads:         downloads,
		key:               key,
		downloadName:      downloadName,
		trustedProxyCount: trustedProxyCount,
	}
}

// Download handles GET /api/download-resume.
func (h *ResumeHandler) Download(w http.ResponseWriter, r *http.Request) {
	f, err := h.files.Open(r.Context(), h.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Resume file not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to open resume", "key", h.key, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	defer f.Close()

	if r.Method == http.MethodGet {
		ua := r.UserAgent()
		if ua == "" {
			ua = "Unknown"
		}
		if out := h.downloads.Track(r.Context(), ClientIP(r, h.trustedProxyCount), ua); out.Err != nil {
			slog.WarnContext(r.Context(), "resume download not tracked", "error", out.Err)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": h.downloadName}))
	http.ServeContent(w, r, h.downloadName, storage.ModTime(f), f)
}
