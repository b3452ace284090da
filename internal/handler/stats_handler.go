package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

// StatsHandler exposes the contact and download counters.
type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.statsService.Get(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrStorageUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "Database not available")
			return
		}
		slog.ErrorContext(r.Context(), "failed to get stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, st)
}
