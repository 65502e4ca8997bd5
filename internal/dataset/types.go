package dataset

import "wtqbench/internal/table"

// Example is one WTQ test record joined with its table.
//
// Examples are constructed once at load time and treated as immutable:
// formatting and scoring read them but never mutate them. Answers preserve
// the file order for display; scoring treats them as a set.
type Example struct {
	ID        string      `json:"id"`
	Question  string      `json:"question"`
	Answers   []string    `json:"answers"`
	TableName string      `json:"table_name"`
	Table     table.Table `json:"table"`
	// TableError records a table that failed to load. The example is kept
	// so a single bad table never aborts a batch.
	TableError string `json:"table_error,omitempty"`
}
