package table

import (
	"fmt"
	"strings"
)

// DefaultRowLimit bounds rows emitted by SerializeForPrompt.
const DefaultRowLimit = 30

// DefaultColumnLimit bounds columns emitted by SerializeForPrompt.
const DefaultColumnLimit = 10

// SerializeForPrompt renders a labeled, truncation-annotated view of a table.
//
// The output shape is part of the prompt contract:
//
//	Table: <name>
//	Header: a | b
//	Row: 1 | 2
//	... (N more rows truncated)
//	... (columns truncated to first C)
//
// The trailing notes appear only when rows or columns were cut. Contrast
// with FormatTokenEfficient, which never annotates.
func SerializeForPrompt(t Table, rowLimit, colLimit int) string {
	if rowLimit < 0 {
		rowLimit = 0
	}
	if colLimit < 0 {
		colLimit = 0
	}

	header := t.Header
	if len(header) > colLimit {
		header = header[:colLimit]
	}
	name := t.Name
	if name == "" {
		name = "table"
	}

	lines := make([]string, 0, minInt(len(t.Rows), rowLimit)+4)
	lines = append(lines, "Table: "+name)
	lines = append(lines, "Header: "+strings.Join(header, " | "))

	columnsCut := false
	for i, row := range t.Rows {
		if len(row) > colLimit {
			columnsCut = true
		}
		if i >= rowLimit {
			continue
		}
		cells := row
		if len(cells) > colLimit {
			cells = cells[:colLimit]
		}
		lines = append(lines, "Row: "+strings.Join(cells, " | "))
	}

	if len(t.Rows) > rowLimit {
		lines = append(lines, fmt.Sprintf("... (%d more rows truncated)", len(t.Rows)-rowLimit))
	}
	if columnsCut {
		lines = append(lines, fmt.Sprintf("... (columns truncated to first %d)", colLimit))
	}
	return strings.Join(lines, "\n")
}

// HumanPreview renders a short table summary for console output.
func HumanPreview(t Table, rows int) string {
	if rows < 0 {
		rows = 0
	}
	shown := t.Rows
	if len(shown) > rows {
		shown = shown[:rows]
	}
	lines := make([]string, 0, len(shown)+2)
	lines = append(lines, fmt.Sprintf("Header (%d cols): %s", len(t.Header), strings.Join(t.Header, ", ")))
	lines = append(lines, fmt.Sprintf("Rows: %d total; showing first %d", len(t.Rows), len(shown)))
	for _, row := range shown {
		lines = append(lines, "  "+strings.Join(row, ", "))
	}
	return strings.Join(lines, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
