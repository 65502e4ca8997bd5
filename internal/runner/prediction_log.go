package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// predictionLog appends one predictions.jsonl line per example as it
// finishes, so an interrupted run keeps every prediction made so far.
// WriteRunOutputs later rewrites the file in task-then-example order.
// A nil log discards appends.
type predictionLog struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

// openPredictionLog creates the run directory and opens predictions.jsonl
// for appending.
func openPredictionLog(outputDir, runID string) (*predictionLog, error) {
	paths, err := NewOutputPaths(outputDir, runID)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	file, err := os.OpenFile(paths.PredictionsJSONLPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open predictions.jsonl: %w", err)
	}
	return &predictionLog{file: file, encoder: json.NewEncoder(file)}, nil
}

// Append writes one example's prediction line immediately.
func (l *predictionLog) Append(taskID string, example ExampleResult) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	// Encode failures are non-fatal; the end-of-run writer still has the
	// full record in memory.
	_ = l.encoder.Encode(newPredictionRecord(taskID, example))
}

// Close releases the underlying file.
func (l *predictionLog) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.file.Close()
}
