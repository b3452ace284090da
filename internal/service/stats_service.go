package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// StatsService provides the portfolio counters.
type StatsService interface {
	Get(ctx context.Context) (model.Stats, error)
}

type statsService struct {
	repo repository.StatsRepository
}

// NewStatsService creates a StatsService. repo may be nil when the
// database is unavailable.
func NewStatsService(repo repository.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) Get(ctx context.Context) (model.Stats, error) {
	if s.repo == nil {
		return model.Stats{}, repository.ErrStorageUnavailable
	}
	return s.repo.GetStats(ctx)
}
