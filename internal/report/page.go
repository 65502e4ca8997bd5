package report

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"wtqbench/internal/runner"
)

// ReportPage renders an HTML report over one or more runs.
func ReportPage(runs []runner.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>WTQ Benchmark Report</title></head><body>\n"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<h1>WTQ Benchmark Report</h1>\n"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<table border=\"1\">\n<tr><th>Run</th><th>Started</th><th>Examples</th><th>Accuracy</th><th>Tokens</th></tr>\n"); err != nil {
			return err
		}
		for _, run := range runs {
			row := fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>%d</td></tr>\n",
				templ.EscapeString(run.RunID),
				templ.EscapeString(run.StartedAt.Format("2006-01-02 15:04:05")),
				run.Summary.ExamplesTotal,
				formatAccuracy(run.Summary.Accuracy),
				run.Summary.TokensTotal,
			)
			if _, err := io.WriteString(w, row); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</table>\n"); err != nil {
			return err
		}
		for _, run := range runs {
			if err := taskTable(run).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

// taskTable renders the per-task accuracy table for one run.
func taskTable(run runner.Results) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		header := fmt.Sprintf("<h2>%s</h2>\n<table border=\"1\">\n<tr><th>Task</th><th>Type</th><th>Status</th><th>Examples</th><th>Denotation accuracy</th></tr>\n",
			templ.EscapeString(run.RunID))
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		for _, task := range run.Tasks {
			total := 0
			accuracy := 0.0
			if task.Eval != nil {
				total = task.Eval.Summary.ExamplesTotal
				accuracy = task.Eval.Summary.DenotationAccuracy
			}
			row := fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>\n",
				templ.EscapeString(task.TaskID),
				templ.EscapeString(task.Type),
				templ.EscapeString(task.Status),
				total,
				formatAccuracy(accuracy),
			)
			if _, err := io.WriteString(w, row); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err
	})
}
