package report

import (
	"fmt"
	"strings"

	"wtqbench/internal/runner"
)

// Summary renders a terminal-friendly run summary.
func Summary(results runner.Results) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Run %s\n", results.RunID)
	fmt.Fprintf(&builder, "Examples: %d  Correct: %d  Accuracy: %s  Tokens: %d\n",
		results.Summary.ExamplesTotal,
		results.Summary.ExamplesCorrect,
		formatAccuracy(results.Summary.Accuracy),
		results.Summary.TokensTotal,
	)
	for _, task := range results.Tasks {
		if task.Eval == nil {
			reason := ""
			if task.FailureReason != nil {
				reason = " (" + *task.FailureReason + ")"
			}
			fmt.Fprintf(&builder, "  %s [%s] %s%s\n", task.TaskID, task.Type, task.Status, reason)
			continue
		}
		summary := task.Eval.Summary
		fmt.Fprintf(&builder, "  %s [%s] %s  denotation accuracy %s over %d examples (%d skipped)\n",
			task.TaskID,
			task.Type,
			task.Status,
			formatAccuracy(summary.DenotationAccuracy),
			summary.ExamplesTotal,
			summary.ExamplesSkipped,
		)
	}
	return builder.String()
}
