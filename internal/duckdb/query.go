package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunRow is one row of the run history listing.
type RunRow struct {
	RunID         string
	StartedAt     time.Time
	ExamplesTotal int
	Accuracy      float64
	TokensTotal   int
}

// TaskAccuracyRow is one task's accuracy joined with its agent model.
type TaskAccuracyRow struct {
	RunID              string
	TaskID             string
	TaskType           string
	Model              string
	ExamplesTotal      int
	ExamplesCorrect    int
	DenotationAccuracy float64
}

// ListRuns returns the most recent runs, newest first.
func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx,
		`SELECT run_id, started_at, examples_total, accuracy, tokens_total
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		if err := rows.Scan(&row.RunID, &row.StartedAt, &row.ExamplesTotal, &row.Accuracy, &row.TokensTotal); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TaskAccuracies returns per-task accuracy for a run, with the agent model
// pulled from the agent spec.
func TaskAccuracies(ctx context.Context, db *sql.DB, runID string) ([]TaskAccuracyRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT t.run_id, t.task_id, t.task_type,
		        COALESCE(json_extract_string(a.spec, '$.model'), ''),
		        t.examples_total, t.examples_correct, t.denotation_accuracy
		 FROM task_runs t
		 LEFT JOIN agents a ON a.agent_id = t.agent_id
		 WHERE t.run_id = ?
		 ORDER BY t.task_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query task accuracies: %w", err)
	}
	defer rows.Close()

	var out []TaskAccuracyRow
	for rows.Next() {
		var row TaskAccuracyRow
		if err := rows.Scan(&row.RunID, &row.TaskID, &row.TaskType, &row.Model,
			&row.ExamplesTotal, &row.ExamplesCorrect, &row.DenotationAccuracy); err != nil {
			return nil, fmt.Errorf("scan task accuracy row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
