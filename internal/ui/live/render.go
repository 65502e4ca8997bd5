package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.Split != "" {
		line += " | Split: " + state.Split
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Queued: " + fmtInt(counts.Queued) +
		" Running: " + fmtInt(counts.Running) +
		" Scoring: " + fmtInt(counts.Scoring) +
		" Done: " + fmtInt(counts.Done) +
		" Correct: " + fmtInt(counts.Correct) +
		" Incorrect: " + fmtInt(counts.Incorrect) +
		" Skipped: " + fmtInt(counts.Skipped) +
		" Error: " + fmtInt(counts.RuntimeError)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderTaskLine renders the current task line.
func renderTaskLine(state State, noColor bool) string {
	if state.TaskID == "" {
		return ""
	}
	line := "Task " + state.TaskID
	if state.ExampleCount > 0 {
		line += " | " + fmtInt(state.ExampleCount) + " examples"
	}
	if state.AgentID != "" || state.Model != "" {
		line += " | " + state.AgentID + " / " + state.Model
	}
	return stylize(line, noColor, lipgloss.Color("240"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
