package repository

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/portfolio/backend/internal/model"

	_ "modernc.org/sqlite"
)

// sqliteTimeLayout matches the text produced by SQLite's CURRENT_TIMESTAMP,
// so rows written by either path compare correctly as strings.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS resume_downloads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	downloaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	ip_address TEXT,
	user_agent TEXT
);`

// SQLiteStore is the embedded SQLite implementation of Store.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Ensure SQLiteStore implements Store at compile time.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore wraps an already opened SQLite handle.
func NewSQLiteStore(db *sql.DB, opts ...Option) *SQLiteStore {
	o := buildOptions(opts)
	return &SQLiteStore{db: db, now: o.now}
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
// The parent directory is created when missing.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	memory := path == ":memory:"
	if !memory {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, unavailable("create database directory", err)
			}
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, unavailable("open sqlite", err)
	}
	if memory {
		// each connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable("ping sqlite", err)
	}
	return NewSQLiteStore(db, opts...), nil
}

func sqliteDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	if path != ":memory:" {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + path + "?" + q.Encode()
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return unavailable("create schema", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) timestamp(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// SaveContact inserts a contacts row and returns its AUTOINCREMENT id.
func (s *SQLiteStore) SaveContact(ctx context.Context, name, email, subject, message string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (name, email, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		name, email, subject, message, s.timestamp(s.now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert contact: last insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) TrackDownload(ctx context.Context, ip, userAgent string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resume_downloads (downloaded_at, ip_address, user_agent)
		 VALUES (?, NULLIF(?, ''), NULLIF(?, ''))`,
		s.timestamp(s.now()), ip, userAgent,
	)
	if err != nil {
		return fmt.Errorf("insert resume download: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetStats(ctx context.Context) (model.Stats, error) {
	since := s.timestamp(s.now().Add(-recentWindow))

	var st model.Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM resume_downloads),
			(SELECT COUNT(*) FROM contacts WHERE created_at >= ?)`,
		since,
	).Scan(&st.TotalContacts, &st.TotalDownloads, &st.RecentContacts)
	if err != nil {
		return model.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return st, nil
}

func (s *SQLiteStore) ClearOldData(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := s.timestamp(s.now().AddDate(0, 0, -retentionDays))

	var removed int64
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM contacts WHERE created_at < ?`,
			`DELETE FROM resume_downloads WHERE downloaded_at < ?`,
		} {
			res, err := tx.ExecContext(ctx, q, cutoff)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			removed += n
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("clear old data: %w", err)
	}
	return removed, nil
}

func (s *SQLiteStore) ListContacts(ctx context.Context, limit int) ([]model.ContactSubmission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, subject, message, CAST(strftime('%s', created_at) AS INTEGER)
		 FROM contacts
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.ContactSubmission
	for rows.Next() {
		var (
			c       model.ContactSubmission
			created sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &created); err != nil {
			return nil, err
		}
		if created.Valid {
			c.CreatedAt = time.Unix(created.Int64, 0).UTC()
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}
