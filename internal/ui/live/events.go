package live

import "wtqbench/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventTaskStart signals the start of a task.
	EventTaskStart
	// EventExample delivers an example status update.
	EventExample
	// EventTaskEnd signals task completion.
	EventTaskEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind         EventKind
	RunID        string
	Split        string
	TaskID       string
	AgentID      string
	Model        string
	ExampleCount int
	TaskStatus   string
	TaskReason   *string
	Example      runner.ExampleEvent
}
