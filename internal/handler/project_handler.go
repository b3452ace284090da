package handler

import (
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// ProjectHandler serves the project catalog.
type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List handles GET /api/projects. Listing failures degrade to an empty
// array so the page still renders.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.List(r.Context())
	if err != nil {
		slog.WarnContext(r.Context(), "failed to list projects", "error", err)
		projects = []model.ProjectEntry{}
	}
	writeJSON(w, http.StatusOK, projects)
}
