package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the initial column layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 12},
		{Title: "Question", Width: 60},
		{Title: "Status", Width: 14},
		{Title: "Answer", Width: 24},
		{Title: "Time", Width: 8},
		{Title: "Tokens", Width: 7},
	}
}

// columnsForWidth scales the question and answer columns to the terminal.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	fixed := 0
	for _, col := range columns {
		fixed += col.Width
	}
	spare := width - fixed - len(columns)
	if spare <= 0 {
		return columns
	}
	columns[1].Width += spare * 2 / 3
	columns[3].Width += spare - spare*2/3
	return columns
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatExampleID(row),
			formatQuestionText(row.Text),
			formatStatus(row, noColor),
			formatAnswer(row),
			formatRowDuration(row, now),
			formatTokens(row.Tokens),
		})
	}
	return rows
}
