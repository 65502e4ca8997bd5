package runner

import "time"

// ExampleEventType identifies an example status update for observers.
type ExampleEventType string

const (
	// ExampleQueued marks an example known but not yet started.
	ExampleQueued ExampleEventType = "queued"
	// ExampleRunning marks an active provider call.
	ExampleRunning ExampleEventType = "running"
	// ExampleScoring marks normalization and scoring of the raw answer.
	ExampleScoring ExampleEventType = "scoring"
	// ExampleCorrect marks a correct answer.
	ExampleCorrect ExampleEventType = "correct"
	// ExampleIncorrect marks an incorrect answer.
	ExampleIncorrect ExampleEventType = "incorrect"
	// ExampleSkipped marks an example skipped before the provider call.
	ExampleSkipped ExampleEventType = "skipped"
	// ExampleRuntimeError marks a provider failure recorded as no answer.
	ExampleRuntimeError ExampleEventType = "runtime_error"
)

// ExampleEvent carries a single status update for an example.
type ExampleEvent struct {
	TaskID       string
	ExampleIndex int
	ExampleID    string
	Question     string
	Type         ExampleEventType
	Answer       string
	Tokens       int
	WallTime     time.Duration
	Error        string
	EmittedAt    time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, dataset DatasetMetadata)
	// OnTaskStart signals the start of a task.
	OnTaskStart(taskID string, taskType string, agentID string, model string, exampleCount int)
	// OnExampleEvent delivers an example status update.
	OnExampleEvent(event ExampleEvent)
	// OnTaskEnd signals task completion.
	OnTaskEnd(taskID string, status string, reason *string)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// NoopObserver ignores all run events.
type NoopObserver struct{}

func (NoopObserver) OnRunStart(string, DatasetMetadata)              {}
func (NoopObserver) OnTaskStart(string, string, string, string, int) {}
func (NoopObserver) OnExampleEvent(ExampleEvent)                     {}
func (NoopObserver) OnTaskEnd(string, string, *string)               {}
func (NoopObserver) OnRunEnd(Results)                                {}
