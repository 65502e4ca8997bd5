package report

import "fmt"

// formatAccuracy returns a percentage string for report output.
func formatAccuracy(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
