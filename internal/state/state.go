// Package state persists build-run history and per-source content hashes in
// SQLite, enabling incremental builds that skip unchanged posts.
package state

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed build-state store.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// BuildRecord summarizes one completed build run.
type BuildRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Posts      int
	Errors     int
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS source_hashes (
		path TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		posts INTEGER NOT NULL,
		errors INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// HashContent returns the hex sha256 of source content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// SourceHash returns the stored hash for path, or "" when unknown.
func (s *Store) SourceHash(ctx context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT hash FROM source_hashes WHERE path = ?", path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query source hash: %w", err)
	}
	return hash, nil
}

// SetSourceHash upserts the hash for path.
func (s *Store) SetSourceHash(ctx context.Context, path, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO source_hashes (path, hash, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, updated_at = excluded.updated_at`,
		path, hash, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upsert source hash: %w", err)
	}
	return nil
}

// PruneSources drops stored hashes for paths no longer present in the input
// set, so deleted posts are rebuilt if they ever come back.
func (s *Store) PruneSources(ctx context.Context, keep map[string]struct{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, "SELECT path FROM source_hashes")
	if err != nil {
		return fmt.Errorf("list source hashes: %w", err)
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan source hash: %w", err)
		}
		if _, ok := keep[path]; !ok {
			stale = append(stale, path)
		}
	}
	if err := rows.Close(); err != nil {
		return err
	}
	for _, path := range stale {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM source_hashes WHERE path = ?", path); err != nil {
			return fmt.Errorf("delete stale source hash: %w", err)
		}
	}
	return nil
}

// RecordBuild appends a completed build run.
func (s *Store) RecordBuild(ctx context.Context, rec BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (id, started_at, finished_at, posts, errors) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.StartedAt.Unix(), rec.FinishedAt.Unix(), rec.Posts, rec.Errors)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}
	return nil
}

// LastBuild returns the most recent build record, or nil when none exist.
func (s *Store) LastBuild(ctx context.Context) (*BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec BuildRecord
	var started, finished int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, started_at, finished_at, posts, errors FROM builds ORDER BY started_at DESC, id DESC LIMIT 1").
		Scan(&rec.ID, &started, &finished, &rec.Posts, &rec.Errors)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last build: %w", err)
	}
	rec.StartedAt = time.Unix(started, 0)
	rec.FinishedAt = time.Unix(finished, 0)
	return &rec, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
