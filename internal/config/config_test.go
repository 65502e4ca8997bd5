package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wtqbench/internal/spec"
)

func validConfig() spec.Config {
	return spec.Config{
		Version: 1,
		Output:  spec.OutputConfig{Dir: ".wtqbench/results"},
		Agents: []spec.AgentConfig{
			{ID: "default", Type: "builtin", Provider: "openrouter", Model: "gpt-4.1-mini"},
		},
		DefaultAgent: "default",
		Tasks: []spec.TaskConfig{
			{ID: "test_split", Type: "denotation_eval", Agent: "default"},
		},
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	cfg := validConfig()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateCollectsIssues(t *testing.T) {
	cfg := spec.Config{Version: 2}
	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	fields := map[string]bool{}
	for _, issue := range verr.Issues {
		fields[issue.Field] = true
	}
	for _, want := range []string{"version", "output.dir", "agents", "default_agent", "tasks"} {
		if !fields[want] {
			t.Fatalf("missing issue for %s in %v", want, verr.Issues)
		}
	}
}

func TestValidateRejectsUnknownTaskAgent(t *testing.T) {
	cfg := validConfig()
	cfg.Tasks[0].Agent = "missing"
	err := Validate(&cfg)
	if err == nil || !strings.Contains(err.Error(), `unknown agent "missing"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadTaskType(t *testing.T) {
	cfg := validConfig()
	cfg.Tasks[0].Type = "react_eval"
	err := Validate(&cfg)
	if err == nil || !strings.Contains(err.Error(), `unsupported type "react_eval"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsDuplicateAgentIDs(t *testing.T) {
	cfg := validConfig()
	cfg.Agents = append(cfg.Agents, cfg.Agents[0])
	err := Validate(&cfg)
	if err == nil || !strings.Contains(err.Error(), `duplicate id "default"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := spec.Config{
		Agents: []spec.AgentConfig{{ID: "only"}},
		Tasks:  []spec.TaskConfig{{ID: "t"}},
	}
	Normalize(&cfg)
	if cfg.DefaultAgent != "only" {
		t.Fatalf("default agent not inferred: %q", cfg.DefaultAgent)
	}
	if cfg.Tasks[0].Agent != "only" {
		t.Fatalf("task agent not defaulted: %q", cfg.Tasks[0].Agent)
	}
	if cfg.Tasks[0].Format.Style != "token_efficient" {
		t.Fatalf("format style not defaulted: %q", cfg.Tasks[0].Format.Style)
	}
	if cfg.Tasks[0].Format.Delimiter != "|" {
		t.Fatalf("delimiter not defaulted: %q", cfg.Tasks[0].Format.Delimiter)
	}
	if cfg.Tasks[0].Format.MaxRows != DefaultMaxRows {
		t.Fatalf("max rows not defaulted: %d", cfg.Tasks[0].Format.MaxRows)
	}
	if cfg.Dataset.MaxTableBytes != DefaultMaxTableBytes {
		t.Fatalf("max table bytes not defaulted: %d", cfg.Dataset.MaxTableBytes)
	}
	if cfg.Workers != DefaultWorkers {
		t.Fatalf("workers not defaulted: %d", cfg.Workers)
	}
	if cfg.Output.Dir != DefaultOutputDir {
		t.Fatalf("output dir not defaulted: %q", cfg.Output.Dir)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `version: 1
output:
  dir: "./results"
agents:
  - id: default
    type: builtin
    provider: openrouter
    model: gpt-4.1-mini
tasks:
  - id: test_split
    type: denotation_eval
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultAgent != "default" {
		t.Fatalf("default agent not normalized: %q", cfg.DefaultAgent)
	}
	if cfg.Tasks[0].Agent != "default" {
		t.Fatalf("task agent not normalized: %q", cfg.Tasks[0].Agent)
	}
}

func TestScaffoldWritesValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)
	if err := Scaffold(path); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("scaffolded config does not load: %v", err)
	}
	if len(cfg.Tasks) == 0 {
		t.Fatalf("scaffolded config has no tasks")
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected error scaffolding over existing config")
	}
}

func TestFindConfigPath(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("FindConfigPath: %v", err)
	}
	if found != path {
		t.Fatalf("found %q, want %q", found, path)
	}
}

func TestOrderedTasks(t *testing.T) {
	cfg := validConfig()
	cfg.Tasks = append(cfg.Tasks, spec.TaskConfig{ID: "second", Type: "agent_eval", Agent: "default"})

	all, err := OrderedTasks(cfg, nil)
	if err != nil {
		t.Fatalf("OrderedTasks: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(all))
	}

	some, err := OrderedTasks(cfg, []string{"second"})
	if err != nil {
		t.Fatalf("OrderedTasks: %v", err)
	}
	if len(some) != 1 || some[0].ID != "second" {
		t.Fatalf("unexpected selection: %+v", some)
	}

	if _, err := OrderedTasks(cfg, []string{"nope"}); err == nil {
		t.Fatalf("expected error for unknown task id")
	}
}
