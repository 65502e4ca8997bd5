package runner

import (
	"context"
	"sync"

	"wtqbench/internal/dataset"
	"wtqbench/internal/score"
)

// exampleJobResult pairs an example result with its position.
type exampleJobResult struct {
	index        int
	result       ExampleResult
	runtimeError bool
}

// runExamplesSequential evaluates examples one at a time.
func runExamplesSequential(ctx context.Context, deps taskDeps, examples []dataset.Example) ([]ExampleResult, bool) {
	results := make([]ExampleResult, 0, len(examples))
	runtimeError := false
	for index, example := range examples {
		result, failed := evaluateExample(ctx, deps, index, example)
		deps.predictions.Append(deps.task.ID, result)
		results = append(results, result)
		if failed {
			runtimeError = true
		}
		if (index+1)%50 == 0 {
			logProgress(deps.logWriter, "task %s processed %d/%d examples", deps.task.ID, index+1, deps.total)
		}
	}
	return results, runtimeError
}

// runExamplesConcurrent evaluates examples through a worker pool, preserving
// example order in the returned slice. Examples are independent, so
// completion order does not matter.
func runExamplesConcurrent(ctx context.Context, deps taskDeps, examples []dataset.Example, workers int) ([]ExampleResult, bool) {
	if workers > len(examples) {
		workers = len(examples)
	}
	deps.logWriter = wrapLogWriter(workers, deps.logWriter)

	jobs := make(chan int)
	resultCh := make(chan exampleJobResult, len(examples))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				result, failed := evaluateExample(ctx, deps, index, examples[index])
				resultCh <- exampleJobResult{index: index, result: result, runtimeError: failed}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for index := range examples {
			select {
			case jobs <- index:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]ExampleResult, len(examples))
	seen := make([]bool, len(examples))
	runtimeError := false
	completed := 0
	for job := range resultCh {
		deps.predictions.Append(deps.task.ID, job.result)
		results[job.index] = job.result
		seen[job.index] = true
		if job.runtimeError {
			runtimeError = true
		}
		completed++
		if completed%50 == 0 {
			logProgress(deps.logWriter, "task %s processed %d/%d examples", deps.task.ID, completed, deps.total)
		}
	}

	// Examples never dispatched (cancelled context) become no-answer records.
	for index, ok := range seen {
		if ok {
			continue
		}
		runtimeError = true
		errText := "not evaluated"
		if err := ctx.Err(); err != nil {
			errText = err.Error()
		}
		results[index] = ExampleResult{
			ID:          examples[index].ID,
			Question:    examples[index].Question,
			Gold:        examples[index].Answers,
			TableName:   examples[index].TableName,
			RawAnswer:   NoAnswer,
			RunError:    errText,
			Predictions: score.SplitPrediction(NoAnswer, len(examples[index].Answers)),
		}
		deps.predictions.Append(deps.task.ID, results[index])
	}
	return results, runtimeError
}
