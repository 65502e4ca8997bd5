package live

import (
	"time"

	"wtqbench/internal/runner"
)

// ExampleRow holds UI state for a single example.
type ExampleRow struct {
	Index      int
	ID         string
	Text       string
	Status     runner.ExampleEventType
	Answer     string
	StartedAt  time.Time
	FinishedAt time.Time
	Tokens     int
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued       int
	Running      int
	Scoring      int
	Done         int
	Correct      int
	Incorrect    int
	Skipped      int
	RuntimeError int
}

// State captures the live UI state for a task run.
type State struct {
	RunID        string
	Split        string
	TaskID       string
	AgentID      string
	Model        string
	ExampleCount int
	StartedAt    time.Time
	LastEvent    string
	Rows         []ExampleRow
	Counts       StatusCounts
}
