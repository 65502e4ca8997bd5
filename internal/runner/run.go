package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"wtqbench/internal/agent"
	"wtqbench/internal/config"
	"wtqbench/internal/dataset"
	"wtqbench/internal/spec"
	"wtqbench/pkg/ratelimit"
)

// ProviderFactory builds a provider for an agent config.
type ProviderFactory func(agentCfg spec.AgentConfig) (agent.Provider, error)

// Options customizes a run. Zero values fall back to sensible defaults:
// env-configured providers, no observer, config-derived rate limiting.
type Options struct {
	ProviderFactory ProviderFactory
	Observer        RunObserver
	Limiter         ratelimit.Limiter
	LogWriter       io.Writer
	Limit           int
	Now             func() time.Time
}

// Run evaluates tasks over the loaded examples and returns the full run
// record. Per-example failures are recorded, never fatal; Run errors only on
// setup problems.
func Run(ctx context.Context, cfg spec.Config, tasks []spec.TaskConfig, examples []dataset.Example, opts Options) (Results, error) {
	if len(tasks) == 0 {
		return Results{}, fmt.Errorf("no tasks to run")
	}
	if opts.Observer == nil {
		opts.Observer = NoopObserver{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Limiter == nil {
		opts.Limiter = ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute)
	}
	if opts.ProviderFactory == nil {
		opts.ProviderFactory = func(agentCfg spec.AgentConfig) (agent.Provider, error) {
			return agent.ProviderFromEnv(agentCfg.Provider, agentCfg.Model, nil)
		}
	}

	runID, err := NewRunID()
	if err != nil {
		return Results{}, err
	}
	var predLog *predictionLog
	if cfg.Output.Dir != "" {
		predLog, err = openPredictionLog(cfg.Output.Dir, runID)
		if err != nil {
			return Results{}, err
		}
		defer predLog.Close()
	}

	results := Results{
		RunID: runID,
		Dataset: DatasetMetadata{
			DataDir:       cfg.Dataset.DataDir,
			Split:         dataset.TestSplitFile,
			ExamplesTotal: len(examples),
			MaxTableBytes: cfg.Dataset.MaxTableBytes,
		},
		Agents:    agentInfos(cfg),
		StartedAt: opts.Now().UTC(),
	}
	opts.Observer.OnRunStart(runID, results.Dataset)

	for _, task := range tasks {
		taskExamples := capExamples(examples, task.Limit, opts.Limit)
		agentCfg, err := config.AgentByID(cfg, task.Agent)
		if err != nil {
			results.Tasks = append(results.Tasks, errorTask(task, "unknown_agent"))
			continue
		}
		provider, err := opts.ProviderFactory(agentCfg)
		if err != nil {
			logProgress(opts.LogWriter, "task %s provider setup failed: %v", task.ID, err)
			results.Tasks = append(results.Tasks, errorTask(task, "provider_setup_failed"))
			continue
		}

		opts.Observer.OnTaskStart(task.ID, task.Type, agentCfg.ID, agentCfg.Model, len(taskExamples))
		deps := taskDeps{
			task:          task,
			agentCfg:      agentCfg,
			provider:      provider,
			limiter:       opts.Limiter,
			maxTableBytes: cfg.Dataset.MaxTableBytes,
			observer:      opts.Observer,
			logWriter:     opts.LogWriter,
			total:         len(taskExamples),
			now:           opts.Now,
			predictions:   predLog,
		}
		taskResult := runExampleTask(ctx, deps, taskExamples, cfg.Workers)
		opts.Observer.OnTaskEnd(taskResult.TaskID, taskResult.Status, taskResult.FailureReason)
		results.Tasks = append(results.Tasks, taskResult)
	}

	results.FinishedAt = opts.Now().UTC()
	results.Summary = summarize(results.Tasks)
	opts.Observer.OnRunEnd(results)
	return results, nil
}

// RunAndWrite runs the tasks and writes all run outputs under the
// configured output directory.
func RunAndWrite(ctx context.Context, cfg spec.Config, tasks []spec.TaskConfig, examples []dataset.Example, opts Options) (Results, OutputPaths, error) {
	results, err := Run(ctx, cfg, tasks, examples, opts)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	paths, err := WriteRunOutputs(results, cfg.Output.Dir)
	if err != nil {
		return results, OutputPaths{}, err
	}
	return results, paths, nil
}

// capExamples applies the task limit and any run-wide override.
func capExamples(examples []dataset.Example, taskLimit, runLimit int) []dataset.Example {
	limit := taskLimit
	if runLimit > 0 && (limit <= 0 || runLimit < limit) {
		limit = runLimit
	}
	if limit > 0 && len(examples) > limit {
		return examples[:limit]
	}
	return examples
}

// errorTask builds a task result for setup failures.
func errorTask(task spec.TaskConfig, reason string) TaskResult {
	return TaskResult{
		TaskID:        task.ID,
		Type:          task.Type,
		Status:        "error",
		FailureReason: &reason,
		AgentID:       task.Agent,
	}
}

// agentInfos copies agent configs into the run record.
func agentInfos(cfg spec.Config) []AgentInfo {
	infos := make([]AgentInfo, 0, len(cfg.Agents))
	for _, a := range cfg.Agents {
		infos = append(infos, AgentInfo{
			ID:          a.ID,
			Type:        a.Type,
			Provider:    a.Provider,
			Model:       a.Model,
			Temperature: a.Temperature,
			MaxTokens:   a.MaxTokens,
		})
	}
	return infos
}
