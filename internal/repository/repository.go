package repository

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// recentWindow is the trailing window used for Stats.RecentContacts.
const recentWindow = 7 * 24 * time.Hour

// Option configures a Store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the server clock used to stamp rows and to compute
// the stats and retention cutoffs.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// IsPostgresDSN reports whether dsn is a PostgreSQL connection URL.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to the store described by dsn and initializes its schema.
// A postgres:// URL selects PostgreSQL; anything else is a SQLite file path
// (or ":memory:"). Every failure wraps ErrStorageUnavailable.
func Open(ctx context.Context, dsn string, opts ...Option) (Store, error) {
	var (
		s   Store
		err error
	)
	if IsPostgresDSN(dsn) {
		s, err = OpenPostgres(ctx, dsn, opts...)
	} else {
		s, err = OpenSQLite(ctx, dsn, opts...)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Init(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
