package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"wtqbench/internal/runner"
)

// formatExampleID returns the display id for an example row.
func formatExampleID(row ExampleRow) string {
	if row.ID != "" {
		return row.ID
	}
	return formatIndex(row.Index)
}

// formatIndex formats an example index.
func formatIndex(index int) string {
	return "E" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatQuestionText truncates question text for display.
func formatQuestionText(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return ""
	}
	const limit = 80
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row ExampleRow, noColor bool) string {
	return stylizeStatus(statusLabel(row.Status), row.Status, noColor)
}

// statusLabel maps status codes to display labels.
func statusLabel(status runner.ExampleEventType) string {
	switch status {
	case runner.ExampleQueued:
		return "queued"
	case runner.ExampleRunning:
		return "running"
	case runner.ExampleScoring:
		return "scoring"
	case runner.ExampleCorrect:
		return "correct"
	case runner.ExampleIncorrect:
		return "incorrect"
	case runner.ExampleSkipped:
		return "skipped"
	case runner.ExampleRuntimeError:
		return "runtime error"
	default:
		return string(status)
	}
}

// formatAnswer truncates a recorded answer for display.
func formatAnswer(row ExampleRow) string {
	if row.Error != "" && row.Status == runner.ExampleRuntimeError {
		return formatShort(row.Error, 40)
	}
	return formatShort(row.Answer, 40)
}

// formatShort collapses whitespace and truncates text.
func formatShort(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row ExampleRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatTokens formats token counts for display.
func formatTokens(tokens int) string {
	if tokens <= 0 {
		return "n/a"
	}
	return fmtInt(tokens)
}

// formatTaskEnd formats a task completion message.
func formatTaskEnd(taskID, status string, reason *string) string {
	if reason != nil {
		return "Task " + taskID + " " + status + " (" + *reason + ")"
	}
	return "Task " + taskID + " " + status
}

// stylizeStatus applies status coloring when enabled.
func stylizeStatus(text string, status runner.ExampleEventType, noColor bool) string {
	if noColor {
		return text
	}
	return statusStyle(status).Render(text)
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.ExampleEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.ExampleCorrect:
		color = lipgloss.Color("42")
	case runner.ExampleIncorrect:
		color = lipgloss.Color("220")
	case runner.ExampleRuntimeError:
		color = lipgloss.Color("196")
	case runner.ExampleRunning:
		color = lipgloss.Color("33")
	case runner.ExampleScoring:
		color = lipgloss.Color("201")
	case runner.ExampleQueued, runner.ExampleSkipped:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
