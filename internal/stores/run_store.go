package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"log-insights/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

//go:generate mockgen -source=run_store.go -destination=./mocks/run_store_mock.go -package=mocks
type RunStore interface {
	// Record persists one completed run.
	Record(ctx context.Context, run *models.RunRecord) error
	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]*models.RunRecord, error)
	Close() error
}

type runStore struct {
	db *sql.DB
}

// NewRunStore opens (or creates) the run-history database at dbPath.
func NewRunStore(dbPath string) (RunStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history db: %w", err)
	}

	ddl := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id          TEXT PRIMARY KEY,
		input_path      TEXT NOT NULL,
		total_requests  INTEGER NOT NULL,
		malformed_lines INTEGER NOT NULL,
		started_at      DATETIME NOT NULL,
		duration_ms     INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize run history schema: %w", err)
	}

	return &runStore{db: db}, nil
}

func (s *runStore) Record(ctx context.Context, run *models.RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, input_path, total_requests, malformed_lines, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.InputPath,
		run.TotalRequests,
		run.MalformedLines,
		run.StartedAt.UTC(),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.RunID, err)
	}
	return nil
}

func (s *runStore) List(ctx context.Context, limit int) ([]*models.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, input_path, total_requests, malformed_lines, started_at, duration_ms
		 FROM runs ORDER BY started_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RunRecord
	for rows.Next() {
		var run models.RunRecord
		var durationMs int64
		if err := rows.Scan(&run.RunID, &run.InputPath, &run.TotalRequests,
			&run.MalformedLines, &run.StartedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run rows: %w", err)
	}
	return runs, nil
}

func (s *runStore) Close() error {
	return s.db.Close()
}
