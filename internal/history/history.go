// Package history keeps an opt-in record of past invocations in a local
// SQLite database. The default run never touches it.
package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dhyeyp/restcli/internal/logging"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// Entry is one recorded invocation.
type Entry struct {
	ID         string
	Method     string
	URL        string
	StatusCode int
	OutputPath string
	CreatedAt  time.Time
}

// Store manages the invocations table at rootDir/history.db.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open ensures rootDir exists, opens (creating if needed) the history
// database under it and runs the schema.
func Open(rootDir string, logger logging.Logger) (*Store, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("rootDir is required")
	}
	rootDir = filepath.Clean(rootDir)
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure rootDir %s: %w", rootDir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(rootDir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With(logging.Field{Key: "component", Value: "history"}),
	}, nil
}

// Record inserts one invocation. A zero CreatedAt is filled with the current
// time; an empty ID gets a fresh uuid.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (id, method, url, status_code, output_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Method, e.URL, e.StatusCode, e.OutputPath, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording invocation: %w", err)
	}

	s.logger.Debug("recorded invocation",
		logging.Field{Key: "id", Value: e.ID},
		logging.Field{Key: "url", Value: e.URL})
	return nil
}

// Recent returns the most recent entries, newest first. limit <= 0 means a
// default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, method, url, status_code, output_path, created_at
		 FROM invocations ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing invocations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Method, &e.URL, &e.StatusCode, &e.OutputPath, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning invocation row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invocation rows: %w", err)
	}
	return entries, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
