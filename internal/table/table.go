package table

// Table holds a header row and data rows in column order.
//
// Rows are not guaranteed to match the header width: WTQ source files
// contain ragged rows, so readers must treat missing cells as empty and
// ignore extras.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Name   string     `json:"name"`
}

// Cell returns the value at (row, col), tolerating ragged rows.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}

// RowCount returns the number of data rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of header columns.
func (t Table) ColumnCount() int {
	return len(t.Header)
}
