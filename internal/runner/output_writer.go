package runner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// predictionRecord is one predictions.jsonl line.
type predictionRecord struct {
	TaskID    string   `json:"task_id"`
	ID        string   `json:"id,omitempty"`
	Question  string   `json:"question"`
	Gold      []string `json:"gold"`
	PredText  string   `json:"pred_text"`
	PredItems []string `json:"pred_items"`
	TableName string   `json:"table_name,omitempty"`
}

// newPredictionRecord builds the predictions.jsonl line for one example.
func newPredictionRecord(taskID string, example ExampleResult) predictionRecord {
	return predictionRecord{
		TaskID:    taskID,
		ID:        example.ID,
		Question:  example.Question,
		Gold:      example.Gold,
		PredText:  example.RawAnswer,
		PredItems: example.Predictions,
		TableName: example.TableName,
	}
}

// taskMetrics is the per-task block in metrics.json.
type taskMetrics struct {
	DenotationAccuracy float64 `json:"denotation_accuracy"`
	N                  int     `json:"n"`
	MultiAnswerCount   int     `json:"multi_answer_count"`
	Skipped            int     `json:"skipped"`
}

// metricsPayload is the metrics.json document.
type metricsPayload struct {
	Tasks   map[string]taskMetrics `json:"tasks"`
	Summary RunSummary             `json:"summary"`
}

// WriteRunOutputs writes results.json, predictions.jsonl, predictions.txt,
// and metrics.json under <outputDir>/<runID>/. predictions.jsonl is
// rewritten in task-then-example order, replacing the per-example lines
// appended while the run was in flight.
func WriteRunOutputs(results Results, outputDir string) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, results.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(paths.ResultsPath(), results); err != nil {
		return OutputPaths{}, err
	}
	if err := writePredictions(paths, results); err != nil {
		return OutputPaths{}, err
	}
	if err := writeMetrics(paths.MetricsPath(), results); err != nil {
		return OutputPaths{}, err
	}
	return paths, nil
}

// writeJSON writes a payload as pretty JSON.
func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writePredictions writes predictions.jsonl and predictions.txt from the
// run's example results, in task then example order.
func writePredictions(paths OutputPaths, results Results) error {
	jsonl, err := os.Create(paths.PredictionsJSONLPath())
	if err != nil {
		return fmt.Errorf("create predictions.jsonl: %w", err)
	}
	defer jsonl.Close()
	writer := bufio.NewWriter(jsonl)
	encoder := json.NewEncoder(writer)

	var textLines []string
	for _, task := range results.Tasks {
		if task.Eval == nil {
			continue
		}
		for _, example := range task.Eval.Examples {
			if err := encoder.Encode(newPredictionRecord(task.TaskID, example)); err != nil {
				return fmt.Errorf("write predictions.jsonl: %w", err)
			}
			textLines = append(textLines, strings.Join(example.Predictions, "|"))
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush predictions.jsonl: %w", err)
	}
	if err := jsonl.Close(); err != nil {
		return fmt.Errorf("close predictions.jsonl: %w", err)
	}

	text := strings.Join(textLines, "\n")
	if len(textLines) > 0 {
		text += "\n"
	}
	if err := os.WriteFile(paths.PredictionsTextPath(), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write predictions.txt: %w", err)
	}
	return nil
}

// writeMetrics writes metrics.json with per-task and run-level numbers.
func writeMetrics(path string, results Results) error {
	payload := metricsPayload{
		Tasks:   make(map[string]taskMetrics, len(results.Tasks)),
		Summary: results.Summary,
	}
	for _, task := range results.Tasks {
		if task.Eval == nil {
			continue
		}
		payload.Tasks[task.TaskID] = taskMetrics{
			DenotationAccuracy: task.Eval.Summary.DenotationAccuracy,
			N:                  task.Eval.Summary.ExamplesTotal,
			MultiAnswerCount:   task.Eval.Summary.MultiAnswerCount,
			Skipped:            task.Eval.Summary.ExamplesSkipped,
		}
	}
	return writeJSON(path, payload)
}
