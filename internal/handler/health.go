package handler

import (
	"log/slog"
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// Health reports liveness. The process is healthy even when the database is
// not; that is reported in the database field.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Database:  "ok",
	}
	if h.db == nil {
		resp.Database = "unavailable"
	} else if err := h.db.Ping(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "database ping failed", "error", err)
		resp.Database = "unavailable"
	}
	writeJSON(w, http.StatusOK, resp)
}
