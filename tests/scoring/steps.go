package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"wtqbench/internal/agent"
	"wtqbench/internal/dataset"
	"wtqbench/internal/runner"
	"wtqbench/internal/spec"
	"wtqbench/internal/table"
)

// goldAnswers maps fixture questions to their gold denotations.
var goldAnswers = map[string][]string{
	"what is the population of tokyo?":       {"37,400,068"},
	"which city has the largest population?": {"Tokyo"},
	"which two cities are listed?":           {"Tokyo", "Delhi"},
}

// scriptedProvider returns a fixed answer or error for every call.
type scriptedProvider struct {
	answer string
	err    error
}

func (p *scriptedProvider) Answer(_ context.Context, _ agent.Request) (agent.Response, error) {
	if p.err != nil {
		return agent.Response{}, p.err
	}
	return agent.Response{Answer: p.answer, TokensIn: 10, TokensOut: 2}, nil
}

// featureState holds scenario state for scoring features.
type featureState struct {
	table    table.Table
	question string
	provider *scriptedProvider
	results  runner.Results
}

// InitializeScenario wires scoring steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*state = featureState{}
		return ctx, nil
	})

	ctx.Step(`^a table of city populations$`, state.aTableOfCityPopulations)
	ctx.Step(`^the agent answers "([^"]*)" to "([^"]*)"$`, state.theAgentAnswers)
	ctx.Step(`^the agent fails with "([^"]*)" for "([^"]*)"$`, state.theAgentFails)
	ctx.Step(`^the denotation task runs$`, state.theDenotationTaskRuns)
	ctx.Step(`^the denotation accuracy is (\d+\.\d+)$`, state.theDenotationAccuracyIs)
	ctx.Step(`^the task still passes$`, state.theTaskStillPasses)
}

func (s *featureState) aTableOfCityPopulations() error {
	s.table = table.Table{
		Name:   "csv/204-csv/590.tsv",
		Header: []string{"city", "population"},
		Rows: [][]string{
			{"Tokyo", "37,400,068"},
			{"Delhi", "31,870,000"},
		},
	}
	return nil
}

func (s *featureState) theAgentAnswers(answer, question string) error {
	if _, ok := goldAnswers[question]; !ok {
		return fmt.Errorf("no gold answers for question %q", question)
	}
	s.question = question
	s.provider = &scriptedProvider{answer: answer}
	return nil
}

func (s *featureState) theAgentFails(message, question string) error {
	if _, ok := goldAnswers[question]; !ok {
		return fmt.Errorf("no gold answers for question %q", question)
	}
	s.question = question
	s.provider = &scriptedProvider{err: errors.New(message)}
	return nil
}

func (s *featureState) theDenotationTaskRuns() error {
	if s.provider == nil {
		return fmt.Errorf("no agent answer configured")
	}
	cfg := spec.Config{
		Version: 1,
		Dataset: spec.DatasetConfig{MaxTableBytes: 10000},
		Agents: []spec.AgentConfig{
			{ID: "default", Type: "builtin", Provider: "openrouter", Model: "test-model"},
		},
		DefaultAgent: "default",
		Workers:      1,
	}
	task := spec.TaskConfig{
		ID:    "test_split",
		Type:  "denotation_eval",
		Agent: "default",
		Format: spec.FormatConfig{
			Style:     "token_efficient",
			Delimiter: "|",
			MaxRows:   50,
		},
	}
	examples := []dataset.Example{{
		ID:        "nt-0",
		Question:  s.question,
		Answers:   goldAnswers[s.question],
		TableName: s.table.Name,
		Table:     s.table,
	}}

	results, err := runner.Run(context.Background(), cfg, []spec.TaskConfig{task}, examples, runner.Options{
		ProviderFactory: func(spec.AgentConfig) (agent.Provider, error) { return s.provider, nil },
	})
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	s.results = results
	return nil
}

func (s *featureState) theDenotationAccuracyIs(expected string) error {
	var want float64
	if _, err := fmt.Sscanf(expected, "%f", &want); err != nil {
		return fmt.Errorf("parse expected accuracy: %w", err)
	}
	if len(s.results.Tasks) != 1 || s.results.Tasks[0].Eval == nil {
		return fmt.Errorf("expected one evaluated task, got %+v", s.results.Tasks)
	}
	got := s.results.Tasks[0].Eval.Summary.DenotationAccuracy
	if math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("expected accuracy %.2f, got %.4f", want, got)
	}
	return nil
}

func (s *featureState) theTaskStillPasses() error {
	if len(s.results.Tasks) != 1 {
		return fmt.Errorf("expected one task, got %d", len(s.results.Tasks))
	}
	if status := s.results.Tasks[0].Status; status != "pass" {
		return fmt.Errorf("expected pass status, got %q", status)
	}
	return nil
}
