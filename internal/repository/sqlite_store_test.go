package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable server clock shared by a store under test.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func setupSQLite(t *testing.T, opts ...Option) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.db")
	s, err := OpenSQLite(context.Background(), path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Init(context.Background()))
	return s
}

func tableNames(t *testing.T, s *SQLiteStore) []string {
	t.Helper()
	rows, err := s.db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestSQLiteStore_InitIsIdempotent(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.Init(ctx))

	assert.Equal(t, []string{"contacts", "resume_downloads"}, tableNames(t, s))

	st, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.TotalContacts)
	assert.Zero(t, st.TotalDownloads)
	assert.Zero(t, st.RecentContacts)
}

func TestSQLiteStore_InitKeepsExistingRows(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	_, err := s.SaveContact(ctx, "Ann", "ann@example.com", "Hi", "Hello there")
	require.NoError(t, err)
	require.NoError(t, s.Init(ctx))

	st, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.TotalContacts)
}

func TestSQLiteStore_SaveContact_IncreasingIDs(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := s.SaveContact(ctx, "Name", "n@example.com", "Subject", "Message")
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}
}

func TestSQLiteStore_SaveContact_Verbatim(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	s := setupSQLite(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := s.SaveContact(ctx, "  Ann ", "ann@example.com", "Subj", "Line1\nLine2")
	require.NoError(t, err)

	contacts, err := s.ListContacts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "  Ann ", contacts[0].Name)
	assert.Equal(t, "Line1\nLine2", contacts[0].Message)
	assert.True(t, now.Equal(contacts[0].CreatedAt), "created_at = %v", contacts[0].CreatedAt)
}

func TestSQLiteStore_TrackDownload_OptionalFields(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.TrackDownload(ctx, "203.0.113.7", "curl/8.0"))
	require.NoError(t, s.TrackDownload(ctx, "", ""))

	var nullIPs int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM resume_downloads WHERE ip_address IS NULL AND user_agent IS NULL`).Scan(&nullIPs))
	assert.Equal(t, 1, nullIPs)

	st, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.TotalDownloads)
}

func TestSQLiteStore_GetStats_RecentWindow(t *testing.T) {
	base := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)
	clock := newFakeClock(base)
	s := setupSQLite(t, WithClock(clock.Now))
	ctx := context.Background()

	// 10 days, exactly 7 days, 1 day before "now"
	for _, age := range []time.Duration{240 * time.Hour, 168 * time.Hour, 24 * time.Hour} {
		clock.Set(base.Add(-age))
		_, err := s.SaveContact(ctx, "n", "e", "s", "m")
		require.NoError(t, err)
	}
	clock.Set(base)

	st, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, st.TotalContacts)
	assert.EqualValues(t, 2, st.RecentContacts, "window is inclusive of the 7 day boundary")
	assert.LessOrEqual(t, st.RecentContacts, st.TotalContacts)
}

func TestSQLiteStore_GetStats_RecentNeverExceedsTotal(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := newFakeClock(base)
	s := setupSQLite(t, WithClock(clock.Now))
	ctx := context.Background()

	offsets := []int{-400, -30, -8, -7, -6, 0, 3, 90}
	for i, days := range offsets {
		clock.Set(base.AddDate(0, 0, days))
		_, err := s.SaveContact(ctx, "n", "e", "s", "m")
		require.NoError(t, err)

		clock.Set(base)
		st, err := s.GetStats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, i+1, st.TotalContacts)
		assert.LessOrEqual(t, st.RecentContacts, st.TotalContacts)
		assert.GreaterOrEqual(t, st.RecentContacts, int64(0))
	}
}

func TestSQLiteStore_ClearOldData(t *testing.T) {
	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	clock := newFakeClock(base)
	s := setupSQLite(t, WithClock(clock.Now))
	ctx := context.Background()

	_, err := s.SaveContact(ctx, "fresh", "e", "s", "m")
	require.NoError(t, err)

	clock.Set(base.AddDate(0, 0, -91))
	_, err = s.SaveContact(ctx, "stale", "e", "s", "m")
	require.NoError(t, err)
	require.NoError(t, s.TrackDownload(ctx, "198.51.100.1", "ua"))
	clock.Set(base)

	before, err := s.GetStats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, before.TotalContacts)

	removed, err := s.ClearOldData(ctx, 90)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed, "one contact and one download")

	after, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.TotalContacts-1, after.TotalContacts)
	assert.Zero(t, after.TotalDownloads)

	contacts, err := s.ListContacts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "fresh", contacts[0].Name)
}

func TestSQLiteStore_ClearOldData_NothingToRemove(t *testing.T) {
	s := setupSQLite(t)

	removed, err := s.ClearOldData(context.Background(), 90)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSQLiteStore_ListContacts_NewestFirst(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	clock := newFakeClock(base)
	s := setupSQLite(t, WithClock(clock.Now))
	ctx := context.Background()

	for i, name := range []string{"first", "second", "third"} {
		clock.Set(base.Add(time.Duration(i) * time.Hour))
		_, err := s.SaveContact(ctx, name, "e", "s", "m")
		require.NoError(t, err)
	}

	contacts, err := s.ListContacts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "third", contacts[0].Name)
	assert.Equal(t, "second", contacts[1].Name)
}

func TestSQLiteStore_ConcurrentWriters(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.SaveContact(ctx, "n", "e", "s", "m")
			errs <- err
		}()
		go func() {
			defer wg.Done()
			errs <- s.TrackDownload(ctx, "127.0.0.1", "test")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	st, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, n, st.TotalContacts)
	assert.EqualValues(t, n, st.TotalDownloads)
}

func TestOpen_SQLiteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "portfolio.db")

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	id, err := s.SaveContact(context.Background(), "n", "e", "s", "m")
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)
}

func TestOpen_UnavailableLocation(t *testing.T) {
	// a regular file where a directory is expected
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Open(context.Background(), filepath.Join(blocker, "portfolio.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageUnavailable), "got %v", err)
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, IsPostgresDSN("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgresDSN("postgresql://localhost/db"))
	assert.False(t, IsPostgresDSN("portfolio.db"))
	assert.False(t, IsPostgresDSN(":memory:"))
}
