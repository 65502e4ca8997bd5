package runner

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func sampleResults() Results {
	reason := (*string)(nil)
	return Results{
		RunID:     "20260829T120000Z-abcdef012345",
		StartedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Tasks: []TaskResult{{
			TaskID:        "test_split",
			Type:          "denotation_eval",
			Status:        "pass",
			FailureReason: reason,
			Eval: &ExampleEval{
				Examples: []ExampleResult{
					{
						ID:          "nu-0",
						Question:    "what is the population of tokyo?",
						Gold:        []string{"37,400,068"},
						TableName:   "csv/204-csv/1.tsv",
						RawAnswer:   "37,400,068",
						Predictions: []string{"37400068"},
						Correct:     true,
					},
					{
						ID:          "nu-1",
						Question:    "which two nations tied?",
						Gold:        []string{"France", "Spain"},
						RawAnswer:   "France|Spain",
						Predictions: []string{"france", "spain"},
						Correct:     true,
					},
				},
				Summary: ExampleSummary{
					ExamplesTotal:      2,
					ExamplesCorrect:    2,
					MultiAnswerCount:   1,
					DenotationAccuracy: 1.0,
				},
			},
		}},
		Summary: RunSummary{TasksTotal: 1, TasksPassed: 1, PassRate: 1.0, ExamplesTotal: 2, ExamplesCorrect: 2, Accuracy: 1.0},
	}
}

func TestWriteRunOutputs(t *testing.T) {
	dir := t.TempDir()
	results := sampleResults()
	paths, err := WriteRunOutputs(results, dir)
	if err != nil {
		t.Fatalf("WriteRunOutputs: %v", err)
	}

	if _, err := os.Stat(paths.ResultsPath()); err != nil {
		t.Fatalf("results.json missing: %v", err)
	}

	jsonl, err := os.Open(paths.PredictionsJSONLPath())
	if err != nil {
		t.Fatalf("open predictions.jsonl: %v", err)
	}
	defer jsonl.Close()
	scanner := bufio.NewScanner(jsonl)
	var records []predictionRecord
	for scanner.Scan() {
		var record predictionRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("decode predictions.jsonl line: %v", err)
		}
		records = append(records, record)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 prediction records, got %d", len(records))
	}
	if records[0].ID != "nu-0" || records[0].PredText != "37,400,068" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].TaskID != "test_split" {
		t.Fatalf("unexpected task id: %q", records[1].TaskID)
	}

	text, err := os.ReadFile(paths.PredictionsTextPath())
	if err != nil {
		t.Fatalf("read predictions.txt: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(text), "\n"), "\n")
	if len(lines) != 2 || lines[0] != "37400068" || lines[1] != "france|spain" {
		t.Fatalf("unexpected predictions.txt lines: %v", lines)
	}

	metricsData, err := os.ReadFile(paths.MetricsPath())
	if err != nil {
		t.Fatalf("read metrics.json: %v", err)
	}
	var metrics metricsPayload
	if err := json.Unmarshal(metricsData, &metrics); err != nil {
		t.Fatalf("decode metrics.json: %v", err)
	}
	got, ok := metrics.Tasks["test_split"]
	if !ok {
		t.Fatalf("missing task metrics: %+v", metrics)
	}
	if got.DenotationAccuracy != 1.0 || got.N != 2 || got.MultiAnswerCount != 1 {
		t.Fatalf("unexpected task metrics: %+v", got)
	}
}

func TestWriteRunOutputsRequiresDir(t *testing.T) {
	if _, err := WriteRunOutputs(sampleResults(), ""); err == nil {
		t.Fatalf("expected error for empty output dir")
	}
}

func TestOutputPathsLayout(t *testing.T) {
	paths, err := NewOutputPaths("/tmp/out", "run-1")
	if err != nil {
		t.Fatalf("NewOutputPaths: %v", err)
	}
	if paths.RunDir() != "/tmp/out/run-1" {
		t.Fatalf("unexpected run dir: %q", paths.RunDir())
	}
	if !strings.HasSuffix(paths.MetricsPath(), "run-1/metrics.json") {
		t.Fatalf("unexpected metrics path: %q", paths.MetricsPath())
	}
	if _, err := NewOutputPaths("", "run-1"); err == nil {
		t.Fatalf("expected error for empty root")
	}
	if _, err := NewOutputPaths("/tmp/out", " "); err == nil {
		t.Fatalf("expected error for empty run id")
	}
}
