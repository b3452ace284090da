package service

import (
	"context"
	"fmt"

	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/repository"
)

// TrackOutcome reports whether a download was recorded. Tracking is best
// effort, so the caller logs Err and carries on.
type TrackOutcome struct {
	Recorded bool
	Err      error
}

// DownloadService records resume downloads.
type DownloadService interface {
	Track(ctx context.Context, ip, userAgent string) TrackOutcome
}

type downloadService struct {
	repo repository.DownloadRepository
}

// NewDownloadService creates a DownloadService. repo may be nil when the
// database is unavailable.
func NewDownloadService(repo repository.DownloadRepository) DownloadService {
	return &downloadService{repo: repo}
}

func (s *downloadService) Track(ctx context.Context, ip, userAgent string) TrackOutcome {
	if s.repo == nil {
		return TrackOutcome{Err: repository.ErrStorageUnavailable}
	}
	if err := s.repo.TrackDownload(ctx, ip, userAgent); err != nil {
		metrics.ResumeDownloadsTotal.WithLabelValues("failed").Inc()
		return TrackOutcome{Err: fmt.Errorf("track download: %w", err)}
	}
	metrics.ResumeDownloadsTotal.WithLabelValues("tracked").Inc()
	return TrackOutcome{Recorded: true}
}
