package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/model"
)

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS resume_downloads (
		id BIGSERIAL PRIMARY KEY,
		downloaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		ip_address TEXT,
		user_agent TEXT
	)`,
}

// PgStore is the PostgreSQL implementation of Store.
type PgStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Ensure PgStore implements Store at compile time.
var _ Store = (*PgStore)(nil)

// NewPgStore creates a PgStore backed by the given pool.
func NewPgStore(pool *pgxpool.Pool, opts ...Option) *PgStore {
	o := buildOptions(opts)
	return &PgStore{pool: pool, now: o.now}
}

// NewPool は PostgreSQL 接続プールを生成する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// OpenPostgres connects to the database at connString.
func OpenPostgres(ctx context.Context, connString string, opts ...Option) (*PgStore, error) {
	pool, err := NewPool(ctx, connString)
	if err != nil {
		return nil, unavailable("connect postgres", err)
	}
	return NewPgStore(pool, opts...), nil
}

func (r *PgStore) Init(ctx context.Context) error {
	for _, stmt := range pgSchema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return unavailable("create schema", err)
		}
	}
	return nil
}

func (r *PgStore) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PgStore) Close() error {
	r.pool.Close()
	return nil
}

// SaveContact inserts a contacts row and returns the id from the RETURNING clause.
func (r *PgStore) SaveContact(ctx context.Context, name, email, subject, message string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, subject, message, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		name, email, subject, message, r.now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	return id, nil
}

func (r *PgStore) TrackDownload(ctx context.Context, ip, userAgent string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO resume_downloads (downloaded_at, ip_address, user_agent)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))`,
		r.now().UTC(), ip, userAgent,
	)
	if err != nil {
		return fmt.Errorf("insert resume download: %w", err)
	}
	return nil
}

func (r *PgStore) GetStats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM resume_downloads),
			(SELECT COUNT(*) FROM contacts WHERE created_at >= $1)`,
		r.now().Add(-recentWindow).UTC(),
	).Scan(&st.TotalContacts, &st.TotalDownloads, &st.RecentContacts)
	if err != nil {
		return model.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return st, nil
}

func (r *PgStore) ClearOldData(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := r.now().AddDate(0, 0, -retentionDays).UTC()

	var removed int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, q := range []string{
			`DELETE FROM contacts WHERE created_at < $1`,
			`DELETE FROM resume_downloads WHERE downloaded_at < $1`,
		} {
			tag, err := tx.Exec(ctx, q, cutoff)
			if err != nil {
				return err
			}
			removed += tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("clear old data: %w", err)
	}
	return removed, nil
}

func (r *PgStore) ListContacts(ctx context.Context, limit int) ([]model.ContactSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, subject, message, created_at
		 FROM contacts
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.ContactSubmission
	for rows.Next() {
		var c model.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
