package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root  string
	RunID string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	return OutputPaths{Root: root, RunID: runID}, nil
}

// RunDir returns the directory for a specific run.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.Root, o.RunID)
}

// ResultsPath returns the path to results.json.
func (o OutputPaths) ResultsPath() string {
	return filepath.Join(o.RunDir(), "results.json")
}

// PredictionsJSONLPath returns the path to predictions.jsonl.
func (o OutputPaths) PredictionsJSONLPath() string {
	return filepath.Join(o.RunDir(), "predictions.jsonl")
}

// PredictionsTextPath returns the path to predictions.txt.
func (o OutputPaths) PredictionsTextPath() string {
	return filepath.Join(o.RunDir(), "predictions.txt")
}

// MetricsPath returns the path to metrics.json.
func (o OutputPaths) MetricsPath() string {
	return filepath.Join(o.RunDir(), "metrics.json")
}

// ReportPath returns the path to the HTML report.
func (o OutputPaths) ReportPath() string {
	return filepath.Join(o.RunDir(), "report.html")
}
