// Package storage persists scrape run history in SQLite. History is
// accounting only: the pipeline never consults it, and idempotence across
// runs comes from the on-disk team files themselves.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/vgcbench/teamscrape/internal/model"
)

// SQLiteStorage records completed scrape runs.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// RecordRun stores one completed scrape run.
func (s *SQLiteStorage) RecordRun(ctx context.Context, run *model.ScrapeRun) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_runs (regulation, saved, already_existing, banned, duplicates, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Regulation,
		run.Stats.Saved,
		run.Stats.AlreadyExisting,
		run.Stats.Banned,
		run.Stats.Duplicates,
		run.StartedAt.UTC(),
		run.CompletedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}
	run.ID = id
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.ScrapeRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, regulation, saved, already_existing, banned, duplicates, started_at, completed_at
		FROM scrape_runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []model.ScrapeRun
	for rows.Next() {
		var run model.ScrapeRun
		var started, completed time.Time
		if err := rows.Scan(
			&run.ID,
			&run.Regulation,
			&run.Stats.Saved,
			&run.Stats.AlreadyExisting,
			&run.Stats.Banned,
			&run.Stats.Duplicates,
			&started,
			&completed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = started
		run.CompletedAt = completed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}
