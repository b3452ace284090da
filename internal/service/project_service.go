package service

import (
	"context"

	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
)

// ProjectLister produces the project catalog. Implemented by *catalog.Aggregator.
type ProjectLister interface {
	List(ctx context.Context) ([]model.ProjectEntry, error)
}

// ProjectService defines the business logic for the project listing.
type ProjectService interface {
	List(ctx context.Context) ([]model.ProjectEntry, error)
}

type projectService struct {
	lister ProjectLister
}

// NewProjectService creates a ProjectService backed by lister.
func NewProjectService(lister ProjectLister) ProjectService {
	return &projectService{lister: lister}
}

// List returns the catalog, never a nil slice on success.
func (s *projectService) List(ctx context.Context) ([]model.ProjectEntry, error) {
	projects, err := s.lister.List(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []model.ProjectEntry{}
	}
	metrics.ProjectsListed.Set(float64(len(projects)))
	return projects, nil
}
