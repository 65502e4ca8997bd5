package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"wtqbench/internal/agent"
	"wtqbench/internal/dataset"
	"wtqbench/internal/prompt"
	"wtqbench/internal/score"
	"wtqbench/internal/session"
	"wtqbench/internal/spec"
	"wtqbench/internal/table"
	"wtqbench/pkg/ratelimit"
)

// NoAnswer is recorded as the prediction when the provider fails for an
// example. Scoring treats it like any other incorrect answer.
const NoAnswer = "no answer"

// agentSampleRows is how many rows agent_eval tasks include as context.
const agentSampleRows = 5

// taskDeps bundles per-task dependencies for example evaluation.
type taskDeps struct {
	task          spec.TaskConfig
	agentCfg      spec.AgentConfig
	provider      agent.Provider
	limiter       ratelimit.Limiter
	maxTableBytes int
	observer      RunObserver
	logWriter     io.Writer
	total         int
	now           func() time.Time
	predictions   *predictionLog
}

// runExampleTask evaluates every example for one task.
func runExampleTask(ctx context.Context, deps taskDeps, examples []dataset.Example, workers int) TaskResult {
	result := TaskResult{
		TaskID:  deps.task.ID,
		Type:    deps.task.Type,
		AgentID: deps.agentCfg.ID,
		Model:   deps.agentCfg.Model,
	}

	for index, example := range examples {
		deps.observer.OnExampleEvent(ExampleEvent{
			TaskID:       deps.task.ID,
			ExampleIndex: index,
			ExampleID:    example.ID,
			Question:     example.Question,
			Type:         ExampleQueued,
			EmittedAt:    deps.now(),
		})
	}

	var exampleResults []ExampleResult
	runtimeError := false
	if workers <= 1 {
		exampleResults, runtimeError = runExamplesSequential(ctx, deps, examples)
	} else {
		exampleResults, runtimeError = runExamplesConcurrent(ctx, deps, examples, workers)
	}

	result.Eval = &ExampleEval{
		Examples: exampleResults,
		Summary:  summarizeExamples(examples, exampleResults),
	}

	if runtimeError {
		reason := "runtime_error"
		result.Status = "error"
		result.FailureReason = &reason
		return result
	}
	result.Status = "pass"
	return result
}

// summarizeExamples computes the task's accuracy. Skipped and failed
// examples count as incorrect, matching set-equality scoring over the full
// example list.
func summarizeExamples(examples []dataset.Example, results []ExampleResult) ExampleSummary {
	summary := ExampleSummary{ExamplesTotal: len(results)}
	golds := make([][]string, 0, len(results))
	preds := make([][]string, 0, len(results))
	for i, r := range results {
		golds = append(golds, examples[i].Answers)
		preds = append(preds, r.Predictions)
		if r.Correct {
			summary.ExamplesCorrect++
		} else {
			summary.ExamplesIncorrect++
		}
		if r.Skipped {
			summary.ExamplesSkipped++
		}
		if len(examples[i].Answers) > 1 {
			summary.MultiAnswerCount++
		}
	}
	if accuracy, err := score.DenotationAccuracy(golds, preds); err == nil {
		summary.DenotationAccuracy = accuracy
	}
	return summary
}

// evaluateExample runs one example through the provider and scores it.
func evaluateExample(ctx context.Context, deps taskDeps, index int, example dataset.Example) (ExampleResult, bool) {
	result := ExampleResult{
		ID:        example.ID,
		Question:  example.Question,
		Gold:      example.Answers,
		TableName: example.TableName,
	}
	emit := func(eventType ExampleEventType, detail string) {
		deps.observer.OnExampleEvent(ExampleEvent{
			TaskID:       deps.task.ID,
			ExampleIndex: index,
			ExampleID:    example.ID,
			Question:     example.Question,
			Type:         eventType,
			Answer:       result.RawAnswer,
			Tokens:       result.TokensIn + result.TokensOut,
			Error:        detail,
			EmittedAt:    deps.now(),
		})
	}

	if example.TableError != "" {
		result.Skipped = true
		result.SkipReason = example.TableError
		result.RawAnswer = NoAnswer
		emit(ExampleSkipped, example.TableError)
		return result, false
	}

	request := agent.Request{
		Instructions: prompt.Instructions(deps.task),
		Question:     example.Question,
	}
	var sess *session.TableSession
	if deps.task.Type == "agent_eval" {
		// Agent tasks get a structured summary plus lookup tools; the
		// format check still runs on the full serialized table.
		tableText := table.FormatTokenEfficient(example.Table, "", deps.task.Format.Delimiter, deps.task.Format.MaxRows)
		if deps.maxTableBytes > 0 && len(tableText) > deps.maxTableBytes {
			return skipLargeTable(result, emit, len(tableText))
		}
		sess = session.New(example.Table)
		request.TableText = prompt.AgentContext(sess, agentSampleRows)
		request.Tools = sess.ToolDefinitions()
	} else {
		tableText := prompt.TableText(example.Table, example.Question, deps.task.Format)
		if deps.maxTableBytes > 0 && len(tableText) > deps.maxTableBytes {
			return skipLargeTable(result, emit, len(tableText))
		}
		request.TableText = tableText
	}

	if err := deps.limiter.Wait(ctx); err != nil {
		result.RawAnswer = NoAnswer
		result.RunError = err.Error()
		result.Predictions = score.SplitPrediction(NoAnswer, len(example.Answers))
		emit(ExampleRuntimeError, result.RunError)
		return result, true
	}

	emit(ExampleRunning, "")
	started := deps.now()
	response, err := deps.provider.Answer(ctx, request)
	result.WallTimeSeconds = deps.now().Sub(started).Seconds()
	if err != nil {
		result.RawAnswer = NoAnswer
		result.RunError = err.Error()
		result.Predictions = score.SplitPrediction(NoAnswer, len(example.Answers))
		logProgress(deps.logWriter, "task %s example %d/%d error: %v", deps.task.ID, index+1, deps.total, err)
		emit(ExampleRuntimeError, result.RunError)
		return result, false
	}

	result.RawAnswer = response.Answer
	result.TokensIn = response.TokensIn
	result.TokensOut = response.TokensOut
	result.ToolCalls = len(response.Trajectory)
	emit(ExampleScoring, "")

	result.Predictions = score.SplitPrediction(response.Answer, len(example.Answers))
	if deps.task.Type == "agent_eval" {
		result.Correct = score.IsAnswerCorrect(response.Answer, example.Answers)
	} else {
		result.Correct = score.SetsMatch(example.Answers, result.Predictions)
	}

	if result.Correct {
		emit(ExampleCorrect, "")
	} else {
		emit(ExampleIncorrect, "")
	}
	return result, false
}

// skipLargeTable records an example skipped for formatted-table size.
func skipLargeTable(result ExampleResult, emit func(ExampleEventType, string), size int) (ExampleResult, bool) {
	reason := fmt.Sprintf("table too large: %d bytes", size)
	result.Skipped = true
	result.SkipReason = reason
	result.RawAnswer = NoAnswer
	emit(ExampleSkipped, reason)
	return result, false
}

// logProgress writes a progress line when a log writer is configured.
func logProgress(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
