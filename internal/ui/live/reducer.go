package live

import (
	"fmt"

	"wtqbench/internal/runner"
)

// Reduce applies an example event to the UI state.
func Reduce(state State, event runner.ExampleEvent) State {
	state = ensureRow(state, event)
	state = applyExampleEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.ExampleEvent) State {
	if event.ExampleIndex < 0 {
		return state
	}
	if event.ExampleIndex < len(state.Rows) {
		return state
	}
	rows := make([]ExampleRow, event.ExampleIndex+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = ExampleRow{Index: i, Status: runner.ExampleQueued}
	}
	state.Rows = rows
	return state
}

// applyExampleEvent updates a row with the given event.
func applyExampleEvent(state State, event runner.ExampleEvent) State {
	if event.ExampleIndex < 0 || event.ExampleIndex >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.ExampleIndex]
	if row.ID == "" {
		row.ID = event.ExampleID
	}
	if row.Text == "" {
		row.Text = event.Question
	}
	row.Status = event.Type
	if event.Type == runner.ExampleRunning && row.StartedAt.IsZero() {
		row.StartedAt = event.EmittedAt
	}
	if isTerminalStatus(event.Type) {
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.Answer = event.Answer
		row.Tokens = event.Tokens
		row.Error = event.Error
	}
	state.Rows[event.ExampleIndex] = row
	return state
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status runner.ExampleEventType) bool {
	switch status {
	case runner.ExampleCorrect,
		runner.ExampleIncorrect,
		runner.ExampleSkipped,
		runner.ExampleRuntimeError:
		return true
	default:
		return false
	}
}

// recount recomputes status counts for the current rows.
func recount(rows []ExampleRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.ExampleQueued:
			counts.Queued++
		case runner.ExampleRunning:
			counts.Running++
		case runner.ExampleScoring:
			counts.Scoring++
		case runner.ExampleCorrect:
			counts.Done++
			counts.Correct++
		case runner.ExampleIncorrect:
			counts.Done++
			counts.Incorrect++
		case runner.ExampleSkipped:
			counts.Done++
			counts.Skipped++
		case runner.ExampleRuntimeError:
			counts.Done++
			counts.RuntimeError++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.ExampleEvent) string {
	switch event.Type {
	case runner.ExampleRuntimeError:
		return fmt.Sprintf("E%d runtime error: %s", event.ExampleIndex+1, event.Error)
	case runner.ExampleSkipped:
		return fmt.Sprintf("E%d skipped: %s", event.ExampleIndex+1, event.Error)
	case runner.ExampleCorrect, runner.ExampleIncorrect:
		return fmt.Sprintf("E%d completed", event.ExampleIndex+1)
	}
	return ""
}
