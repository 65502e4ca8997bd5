package report

import (
	"context"
	"strings"

	"wtqbench/internal/runner"
)

// RenderReportHTML renders the report page into a string.
func RenderReportHTML(ctx context.Context, runs []runner.Results) (string, error) {
	var builder strings.Builder
	if err := ReportPage(runs).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// BuildReportHTML renders a report, returning "" on render failure.
func BuildReportHTML(runs []runner.Results) string {
	html, err := RenderReportHTML(context.Background(), runs)
	if err != nil {
		return ""
	}
	return html
}
