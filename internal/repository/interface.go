package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	// SaveContact inserts a contact submission stamped with the store clock
	// and returns its identifier. Arguments are persisted verbatim.
	SaveContact(ctx context.Context, name, email, subject, message string) (int64, error)
}

// DownloadRepository records resume downloads.
type DownloadRepository interface {
	// TrackDownload records a resume download. Empty ip or userAgent is
	// stored as NULL.
	TrackDownload(ctx context.Context, ip, userAgent string) error
}

// StatsRepository reads aggregate counters.
type StatsRepository interface {
	// GetStats returns total contacts, total downloads and contacts created
	// within the trailing seven days, read in a single statement.
	GetStats(ctx context.Context) (model.Stats, error)
}

// Store is the complete persistence interface. Every method is a single
// atomic unit against the database; implementations are safe for
// concurrent use.
type Store interface {
	DB
	ContactRepository
	DownloadRepository
	StatsRepository

	// Init creates both tables if they do not exist. It never drops or
	// alters existing data and is safe to call on every start.
	Init(ctx context.Context) error

	// ClearOldData deletes contacts and downloads older than retentionDays
	// and returns the number of rows removed from both tables.
	ClearOldData(ctx context.Context, retentionDays int) (int64, error)

	// ListContacts returns up to limit submissions, newest first.
	ListContacts(ctx context.Context, limit int) ([]model.ContactSubmission, error)

	Close() error
}
