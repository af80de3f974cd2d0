package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"marquee/internal/config"
)

// Store is the SQLite-backed record of book searches and catalog imports.
// Writes are serialized across processes by a lock file beside the
// database.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

const (
	lockRetryDelay = 25 * time.Millisecond
	lockTimeout    = 10 * time.Second

	// LockFileName is created next to the database.
	LockFileName = "marquee.lock"
)

// busyBackoff is the wait before each retry of a write that hit SQLITE_BUSY.
var busyBackoff = []time.Duration{
	10 * time.Millisecond,
	20 * time.Millisecond,
	40 * time.Millisecond,
	80 * time.Millisecond,
}

// ErrLocked is returned when the write lock could not be acquired in time.
var ErrLocked = errors.New("store is locked by another process")

// Open creates the configured directories and opens the database under
// the data directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return OpenPath(cfg.DatabasePath())
}

// OpenPath opens the database at dbPath. The parent directory must exist.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect %s: %w", dbPath, err)
	}

	st := &Store{
		db:   db,
		path: dbPath,
		lock: flock.New(filepath.Join(filepath.Dir(dbPath), LockFileName)),
	}
	if err := st.withWriteLock(context.Background(), st.initSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

// dsn applies the pragmas on every pooled connection, not just the first.
func dsn(dbPath string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + dbPath + "?" + q.Encode()
}

func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

func retryOnBusy(ctx context.Context, op func() error) error {
	err := op()
	for _, wait := range busyBackoff {
		if !isBusy(err) {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		err = op()
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close releases the database. It is safe on a nil Store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// withWriteLock runs fn while holding the cross-process write lock.
func (s *Store) withWriteLock(ctx context.Context, fn func(context.Context) error) error {
	ctx = orBackground(ctx)
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	ok, err := s.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrLocked, s.lock.Path())
		}
		return fmt.Errorf("acquire store lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }()

	return retryOnBusy(ctx, func() error { return fn(ctx) })
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, value)
	return t
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
