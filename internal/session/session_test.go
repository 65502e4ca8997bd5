package session

import (
	"testing"

	"wtqbench/internal/table"
)

func sampleTable() table.Table {
	return table.Table{
		Name:   "csv/204-csv/1.tsv",
		Header: []string{"City", "Population"},
		Rows: [][]string{
			{"Tokyo", "37400068"},
			{"Delhi", "28514000"},
			{"Shanghai", "25582000"},
		},
	}
}

func TestSessionHeadersAndRowCount(t *testing.T) {
	s := New(sampleTable())
	headers := s.Headers()
	if len(headers) != 2 || headers[0] != "City" {
		t.Fatalf("unexpected headers: %v", headers)
	}
	if s.RowCount() != 3 {
		t.Fatalf("unexpected row count: %d", s.RowCount())
	}

	// Mutating the returned slice must not touch session state.
	headers[0] = "mutated"
	if s.Headers()[0] != "City" {
		t.Fatalf("session headers were mutated")
	}
}

func TestSessionSampleRows(t *testing.T) {
	s := New(sampleTable())
	rows := s.SampleRows(2)
	if len(rows) != 2 || rows[1][0] != "Delhi" {
		t.Fatalf("unexpected sample: %v", rows)
	}
	if got := s.SampleRows(10); len(got) != 3 {
		t.Fatalf("expected clamp to 3 rows, got %d", len(got))
	}
	if got := s.SampleRows(-1); len(got) != 0 {
		t.Fatalf("expected no rows for negative n, got %d", len(got))
	}
}

func TestSessionSearchRows(t *testing.T) {
	s := New(sampleTable())
	matches := s.SearchRows("TOKYO")
	if len(matches) != 1 || matches[0][1] != "37400068" {
		t.Fatalf("unexpected matches: %v", matches)
	}
	if got := s.SearchRows(""); got != nil {
		t.Fatalf("expected no matches for empty term, got %v", got)
	}
	if got := s.SearchRows("atlantis"); got != nil {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestSessionToolDefinitions(t *testing.T) {
	s := New(sampleTable())
	defs := s.ToolDefinitions()
	names := map[string]bool{}
	for _, def := range defs {
		names[def.Name] = true
	}
	for _, want := range []string{"headers", "row_count", "sample_rows", "search_rows"} {
		if !names[want] {
			t.Fatalf("missing tool %q in %v", want, names)
		}
	}
	for _, def := range defs {
		if def.Handler == nil {
			t.Fatalf("tool %q has no handler", def.Name)
		}
	}
}

func TestSessionToolHandlers(t *testing.T) {
	s := New(sampleTable())
	handlers := map[string]func(map[string]any) (string, error){}
	for _, def := range s.ToolDefinitions() {
		handlers[def.Name] = def.Handler
	}

	out, err := handlers["headers"](nil)
	if err != nil || out != "City | Population" {
		t.Fatalf("headers: %q, %v", out, err)
	}
	out, err = handlers["row_count"](nil)
	if err != nil || out != "3" {
		t.Fatalf("row_count: %q, %v", out, err)
	}
	out, err = handlers["sample_rows"](map[string]any{"n": float64(1)})
	if err != nil || out != "Tokyo | 37400068" {
		t.Fatalf("sample_rows: %q, %v", out, err)
	}
	out, err = handlers["search_rows"](map[string]any{"term": "delhi"})
	if err != nil || out != "Delhi | 28514000" {
		t.Fatalf("search_rows: %q, %v", out, err)
	}
	if out, err = handlers["search_rows"](map[string]any{"term": "atlantis"}); err != nil || out != "no matching rows" {
		t.Fatalf("search_rows miss: %q, %v", out, err)
	}
	if _, err = handlers["sample_rows"](nil); err == nil {
		t.Fatalf("expected error for missing n")
	}
	if _, err = handlers["search_rows"](map[string]any{"term": 5}); err == nil {
		t.Fatalf("expected error for non-string term")
	}
}

func TestSessionDescribe(t *testing.T) {
	s := New(sampleTable())
	want := "csv/204-csv/1.tsv: 2 columns, 3 rows"
	if got := s.Describe(); got != want {
		t.Fatalf("Describe() = %q, want %q", got, want)
	}
}
