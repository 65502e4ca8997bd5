package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const predictionsFixture = `{"task_id":"test_split","id":"nt-0","question":"what is the population of tokyo?","gold":["37,400,068"],"pred_text":"37,400,068","pred_items":["37400068"]}
{"task_id":"test_split","id":"nt-1","question":"which city is larger?","gold":["Tokyo"],"pred_text":"Delhi","pred_items":["delhi"]}
{"task_id":"test_split","id":"nt-2","question":"name the two cities","gold":["Tokyo","Delhi"],"pred_text":"Tokyo | Delhi","pred_items":["tokyo","delhi"]}
`

// TestRescorePredictions verifies accuracy is recomputed from raw answers.
func TestRescorePredictions(t *testing.T) {
	tallies, err := rescorePredictions(strings.NewReader(predictionsFixture))
	if err != nil {
		t.Fatalf("rescore: %v", err)
	}
	tally := tallies["test_split"]
	if tally == nil {
		t.Fatalf("missing task tally")
	}
	if tally.total != 3 || tally.correct != 2 {
		t.Fatalf("expected 2/3, got %d/%d", tally.correct, tally.total)
	}
}

// TestScoreCommand verifies the score command output.
func TestScoreCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.jsonl")
	if err := os.WriteFile(path, []byte(predictionsFixture), 0o644); err != nil {
		t.Fatalf("write predictions: %v", err)
	}

	cmd := findCommand("score")
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Run([]string{path}, &stdout, &stderr)
	if exitCode != ExitOK {
		t.Fatalf("unexpected exit: %d, stderr: %s", exitCode, stderr.String())
	}
	if !strings.Contains(stdout.String(), "test_split: denotation accuracy 66.67% (2/3)") {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
}

// TestScoreCommandMissingFile verifies missing input errors.
func TestScoreCommandMissingFile(t *testing.T) {
	cmd := findCommand("score")
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Run([]string{filepath.Join(t.TempDir(), "nope.jsonl")}, &stdout, &stderr)
	if exitCode != ExitError {
		t.Fatalf("expected error exit, got %d", exitCode)
	}
}
