package prompt

import (
	"strings"

	"wtqbench/internal/session"
	"wtqbench/internal/spec"
	"wtqbench/internal/table"
)

// DefaultInstructions is the system prompt used when a task does not
// override it.
const DefaultInstructions = "You are answering questions about a table. " +
	"Answer using only the table contents. " +
	"Reply with the answer value only, no explanation. " +
	"If the question asks for multiple values, separate them with | characters."

// Instructions returns the system prompt for a task.
func Instructions(task spec.TaskConfig) string {
	if strings.TrimSpace(task.Instructions) != "" {
		return task.Instructions
	}
	return DefaultInstructions
}

// TableText formats a table for the prompt according to the task's format
// settings.
func TableText(t table.Table, question string, format spec.FormatConfig) string {
	if format.Style == "labeled" {
		return table.SerializeForPrompt(t, format.RowLimit, format.ColumnLimit)
	}
	return table.FormatTokenEfficient(t, question, format.Delimiter, format.MaxRows)
}

// AgentContext builds the structured table summary handed to tool-capable
// providers: headers, row count, and a few sample rows, leaving detailed
// lookups to the session tools.
func AgentContext(s *session.TableSession, sampleCount int) string {
	var builder strings.Builder
	builder.WriteString(s.Describe())
	builder.WriteString("\nColumns: ")
	builder.WriteString(strings.Join(s.Headers(), " | "))
	samples := s.SampleRows(sampleCount)
	if len(samples) > 0 {
		builder.WriteString("\nSample rows:")
		for _, row := range samples {
			builder.WriteString("\n  ")
			builder.WriteString(strings.Join(row, " | "))
		}
	}
	return builder.String()
}
