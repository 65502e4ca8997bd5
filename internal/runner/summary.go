package runner

// summarize aggregates task results into a run summary.
func summarize(tasks []TaskResult) RunSummary {
	summary := RunSummary{
		TasksTotal: len(tasks),
	}
	for _, task := range tasks {
		switch task.Status {
		case "pass":
			summary.TasksPassed++
		default:
			summary.TasksFailed++
		}
		if task.Eval == nil {
			continue
		}
		for _, example := range task.Eval.Examples {
			summary.TokensTotal += example.TokensIn + example.TokensOut
		}
		summary.ExamplesTotal += task.Eval.Summary.ExamplesTotal
		summary.ExamplesCorrect += task.Eval.Summary.ExamplesCorrect
	}
	if summary.TasksTotal > 0 {
		summary.PassRate = float64(summary.TasksPassed) / float64(summary.TasksTotal)
	}
	if summary.ExamplesTotal > 0 {
		summary.Accuracy = float64(summary.ExamplesCorrect) / float64(summary.ExamplesTotal)
	}
	return summary
}
