package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Sentinel errors callers branch on. Write failures are surfaced and never
// retried here; reads degrade to empty results instead.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrWriteFailed        = errors.New("write failed")
	ErrClearFailed        = errors.New("clear failed")
)

// Store owns the single sqlite file holding recordings, moods, reports and
// settings. Construct one per process and pass it down explicitly.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// New opens (or creates) the sqlite database at dbPath and runs migrations.
// Any failure here wraps ErrStorageUnavailable and the store must not be used.
func New(dbPath string, log *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %v", ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrStorageUnavailable, err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: exec pragma %q: %v", ErrStorageUnavailable, p, err)
		}
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrStorageUnavailable, err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory(log *zap.SugaredLogger) (*Store, error) {
	return New(":memory:", log)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS recordings (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		duration   TEXT NOT NULL DEFAULT '',
		emotion    TEXT NOT NULL,
		intensity  REAL NOT NULL DEFAULT 0,
		audio_uri  TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_recordings_date ON recordings(date);

	CREATE TABLE IF NOT EXISTS moods (
		id                TEXT PRIMARY KEY,
		primary_emotion   TEXT NOT NULL,
		secondary_emotion TEXT NOT NULL DEFAULT '',
		intensity         REAL NOT NULL DEFAULT 0,
		timestamp         TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_moods_timestamp ON moods(timestamp);

	CREATE TABLE IF NOT EXISTS reports (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		recipient  TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'Pending',
		time_range TEXT NOT NULL DEFAULT 'week',
		data       TEXT NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('theme',              'dark'),
		('user_id',            'local'),
		('default_time_range', 'week'),
		('sync_enabled',       'false');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// ClearAllData removes every recording, mood and report in one transaction.
// Settings are preserved. On failure the prior data is left intact.
func (s *Store) ClearAllData() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin clear: %v", ErrClearFailed, err)
	}
	for _, table := range []string{"recordings", "moods", "reports"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: clear %s: %v", ErrClearFailed, table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit clear: %v", ErrClearFailed, err)
	}
	return nil
}
