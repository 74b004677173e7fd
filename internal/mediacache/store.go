// Package mediacache persists which media clips have already been extracted
// from a source video, so repeat exports skip the expensive ffmpeg work. The
// cache is purely an optimization: losing it costs time, never correctness.
package mediacache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped when the schema changes; a mismatched database is
// rejected rather than migrated, since the cache is safe to delete.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// version of the tool.
var ErrSchemaMismatch = errors.New("media cache schema mismatch")

// Clip kinds tracked by the cache.
const (
	KindImage = "image"
	KindAudio = "audio"
)

// Store is a SQLite-backed clip cache.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to (or creates) the cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open media cache: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the recorded media path for a clip, or "" when the clip has
// not been extracted before.
func (s *Store) Lookup(ctx context.Context, source, kind string, start, end float64) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx,
		"SELECT path FROM clips WHERE source = ? AND kind = ? AND clip_start = ? AND clip_end = ?",
		source, kind, start, end,
	).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup clip: %w", err)
	}
	return path, nil
}

// Record stores (or refreshes) the media path for an extracted clip.
func (s *Store) Record(ctx context.Context, source, kind string, start, end float64, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clips (source, kind, clip_start, clip_end, path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (source, kind, clip_start, clip_end) DO UPDATE SET path = excluded.path, created_at = excluded.created_at`,
		source, kind, start, end, path, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record clip: %w", err)
	}
	return nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}
