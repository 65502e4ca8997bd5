package session

import (
	"fmt"
	"strconv"
	"strings"

	"wtqbench/internal/agent"
	"wtqbench/internal/table"
)

// TableSession holds the table under discussion for one example. Every tool
// answer is derived from this session's table, so concurrent examples never
// observe each other's state.
type TableSession struct {
	table table.Table
}

// New starts a session over a table.
func New(t table.Table) *TableSession {
	return &TableSession{table: t}
}

// Table returns the session's table.
func (s *TableSession) Table() table.Table {
	return s.table
}

// Headers returns the table's column headers.
func (s *TableSession) Headers() []string {
	headers := make([]string, len(s.table.Header))
	copy(headers, s.table.Header)
	return headers
}

// RowCount returns the number of data rows.
func (s *TableSession) RowCount() int {
	return s.table.RowCount()
}

// SampleRows returns up to n rows from the top of the table.
func (s *TableSession) SampleRows(n int) [][]string {
	if n < 0 {
		n = 0
	}
	if n > len(s.table.Rows) {
		n = len(s.table.Rows)
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(s.table.Rows[i]))
		copy(row, s.table.Rows[i])
		rows[i] = row
	}
	return rows
}

// SearchRows returns rows where any cell contains the term,
// case-insensitively. An empty term matches nothing.
func (s *TableSession) SearchRows(term string) [][]string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var matches [][]string
	for _, row := range s.table.Rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), term) {
				copied := make([]string, len(row))
				copy(copied, row)
				matches = append(matches, copied)
				break
			}
		}
	}
	return matches
}

// Describe returns a one-line summary of the session's table.
func (s *TableSession) Describe() string {
	name := s.table.Name
	if name == "" {
		name = "table"
	}
	return fmt.Sprintf("%s: %d columns, %d rows", name, s.table.ColumnCount(), s.table.RowCount())
}

// ToolDefinitions exports the session's lookups as executable provider tools.
func (s *TableSession) ToolDefinitions() []agent.ToolDefinition {
	return []agent.ToolDefinition{
		{
			Name:        "headers",
			Description: "List the table's column headers.",
			Handler: func(map[string]any) (string, error) {
				return strings.Join(s.Headers(), " | "), nil
			},
		},
		{
			Name:        "row_count",
			Description: "Return the number of data rows in the table.",
			Handler: func(map[string]any) (string, error) {
				return strconv.Itoa(s.RowCount()), nil
			},
		},
		{
			Name:        "sample_rows",
			Description: "Return up to n rows from the top of the table.",
			Parameters: pointerTo(agent.ObjectSchema(map[string]agent.ToolSchema{
				"n": agent.IntegerSchema(),
			}, []string{"n"}, agent.BoolPointer(false))),
			Handler: func(args map[string]any) (string, error) {
				n, err := intArg(args, "n")
				if err != nil {
					return "", err
				}
				return renderRows(s.SampleRows(n)), nil
			},
		},
		{
			Name:        "search_rows",
			Description: "Return rows where any cell contains the search term.",
			Parameters: pointerTo(agent.ObjectSchema(map[string]agent.ToolSchema{
				"term": agent.StringSchema(),
			}, []string{"term"}, agent.BoolPointer(false))),
			Handler: func(args map[string]any) (string, error) {
				term, err := stringArg(args, "term")
				if err != nil {
					return "", err
				}
				rows := s.SearchRows(term)
				if len(rows) == 0 {
					return "no matching rows", nil
				}
				return renderRows(rows), nil
			},
		},
	}
}

func pointerTo(schema agent.ToolSchema) *agent.ToolSchema {
	return &schema
}

func renderRows(rows [][]string) string {
	if len(rows) == 0 {
		return "no rows"
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, " | ")
	}
	return strings.Join(lines, "\n")
}

func intArg(args map[string]any, key string) (int, error) {
	value, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	number, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %q must be a number", key)
	}
	return int(number), nil
}

func stringArg(args map[string]any, key string) (string, error) {
	value, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return text, nil
}
