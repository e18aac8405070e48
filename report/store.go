// Package report persists verification run outcomes to SQLite so failures
// can be compared across runs and environments.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// Schema for the report tables.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	target TEXT NOT NULL,
	started INTEGER NOT NULL,
	finished INTEGER
);
CREATE TABLE IF NOT EXISTS results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id),
	scenario TEXT NOT NULL,
	status TEXT NOT NULL,
	detail TEXT,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
`

// Result statuses.
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Store records runs and per-scenario results.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the report database at path with WAL and a busy
// timeout, and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("report: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("report: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("report: schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store for testing. MaxOpenConns(1) keeps all
// queries on the same in-memory database; closing is registered on t.Cleanup.
func OpenMemory(t testing.TB) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("report.OpenMemory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// BeginRun records the start of a run against target and returns its id.
func (s *Store) BeginRun(ctx context.Context, target string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (target, started) VALUES (?, ?)`,
		target, time.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("report: begin run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("report: begin run id: %w", err)
	}
	return id, nil
}

// Record stores one scenario outcome. detail carries the failure error text;
// empty for passes.
func (s *Store) Record(ctx context.Context, runID int64, scenario, status, detail string, d time.Duration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (run_id, scenario, status, detail, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		runID, scenario, status, detail, d.Milliseconds())
	if err != nil {
		return fmt.Errorf("report: record %s: %w", scenario, err)
	}
	return nil
}

// FinishRun stamps the run's end time.
func (s *Store) FinishRun(ctx context.Context, runID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished = ? WHERE id = ?`,
		time.Now().UnixMilli(), runID)
	if err != nil {
		return fmt.Errorf("report: finish run: %w", err)
	}
	return nil
}

// Summary returns the pass/fail counts of a run.
func (s *Store) Summary(ctx context.Context, runID int64) (passed, failed int, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM results WHERE run_id = ? GROUP BY status`, runID)
	if err != nil {
		return 0, 0, fmt.Errorf("report: summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return 0, 0, fmt.Errorf("report: summary scan: %w", err)
		}
		switch status {
		case StatusPassed:
			passed = n
		case StatusFailed:
			failed = n
		}
	}
	return passed, failed, rows.Err()
}
