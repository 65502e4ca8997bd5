package score

import "testing"

// TestDenotationAccuracyNumericCanonicalization verifies "1,000" == "1000".
func TestDenotationAccuracyNumericCanonicalization(t *testing.T) {
	got, err := DenotationAccuracy([][]string{{"1,000"}}, [][]string{{"1000"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}
}

// TestDenotationAccuracyEmptyInput verifies no division by zero.
func TestDenotationAccuracyEmptyInput(t *testing.T) {
	got, err := DenotationAccuracy(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.0 {
		t.Fatalf("expected 0.0 for empty input, got %v", got)
	}
}

// TestDenotationAccuracyLengthMismatch verifies the caller contract fails fast.
func TestDenotationAccuracyLengthMismatch(t *testing.T) {
	if _, err := DenotationAccuracy([][]string{{"a"}}, nil); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

// TestSetsMatchOrderInsensitive verifies set semantics within an example.
func TestSetsMatchOrderInsensitive(t *testing.T) {
	if !SetsMatch([]string{"A", "B"}, []string{"b", "a"}) {
		t.Fatalf("expected reordered sets to match")
	}
	if SetsMatch([]string{"A", "B"}, []string{"a"}) {
		t.Fatalf("expected subset not to match")
	}
}

// TestSetsMatchDuplicatesCollapse verifies multiset semantics do not apply.
func TestSetsMatchDuplicatesCollapse(t *testing.T) {
	if !SetsMatch([]string{"a", "a"}, []string{"a"}) {
		t.Fatalf("expected duplicate gold entries to collapse")
	}
}

// TestDenotationAccuracyMixed verifies per-example aggregation.
func TestDenotationAccuracyMixed(t *testing.T) {
	golds := [][]string{{"Tokyo"}, {"1", "2"}, {"x"}, {"50%"}}
	preds := [][]string{{"tokyo"}, {"2", "1"}, {"y"}, {"50"}}
	got, err := DenotationAccuracy(golds, preds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}
