package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run statuses persisted in the run log.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID         string
	Dataset    string
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// StepRecord is one recorded step outcome within a run.
type StepRecord struct {
	RunID  string
	Seq    int
	Name   string
	Status string
	Detail string
	Rows   int
}

// RunLog persists pipeline run history backed by SQLite.
type RunLog struct {
	db   *sql.DB
	path string
}

// OpenRunLog initializes or connects to the run log database and applies
// migrations.
func OpenRunLog(path string) (*RunLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	log := &RunLog{db: db, path: path}
	if err := log.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return log, nil
}

// Close closes the underlying database connection.
func (l *RunLog) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// BeginRun inserts a running record for the given run identifier.
func (l *RunLog) BeginRun(ctx context.Context, id, dataset string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, dataset, status, started_at) VALUES (?, ?, ?, ?)`,
		id, dataset, RunStatusRunning, now,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stamps the run's terminal status and finish time.
func (l *RunLog) FinishRun(ctx context.Context, id, status string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := l.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, now, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordStep appends one step outcome to a run.
func (l *RunLog) RecordStep(ctx context.Context, step StepRecord) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO run_steps (run_id, seq, name, status, detail, rows) VALUES (?, ?, ?, ?, ?, ?)`,
		step.RunID, step.Seq, step.Name, step.Status, step.Detail, step.Rows,
	)
	if err != nil {
		return fmt.Errorf("insert step: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit <= 0
// returns everything.
func (l *RunLog) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, dataset, status, started_at, COALESCE(finished_at, '') FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Dataset, &run.Status, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunSteps returns the recorded steps of one run in sequence order.
func (l *RunLog) RunSteps(ctx context.Context, runID string) ([]StepRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT run_id, seq, name, status, detail, rows FROM run_steps WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []StepRecord
	for rows.Next() {
		var step StepRecord
		if err := rows.Scan(&step.RunID, &step.Seq, &step.Name, &step.Status, &step.Detail, &step.Rows); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}
