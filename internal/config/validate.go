package config

import (
	"fmt"
	"strings"

	"wtqbench/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a config for correctness.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		add("output.dir", "is required")
	}
	if cfg.Dataset.MaxTableBytes < 0 {
		add("dataset.max_table_bytes", "must be >= 0")
	}
	if cfg.Workers < 0 {
		add("workers", "must be >= 0")
	}
	if cfg.RateLimit.RequestsPerMinute < 0 {
		add("rate_limit.requests_per_minute", "must be >= 0")
	}

	agentIDs := validateAgents(cfg, add)

	if len(cfg.Tasks) == 0 {
		add("tasks", "at least one task is required")
	}
	taskIDs := map[string]struct{}{}
	for i, task := range cfg.Tasks {
		fieldPrefix := fmt.Sprintf("tasks[%d]", i)
		id := strings.TrimSpace(task.ID)
		if id == "" {
			add(fieldPrefix+".id", "is required")
		} else if _, exists := taskIDs[id]; exists {
			add("tasks.id", fmt.Sprintf("duplicate id %q", id))
		} else {
			taskIDs[id] = struct{}{}
		}

		switch task.Type {
		case "denotation_eval", "agent_eval":
		case "":
			add(fieldPrefix+".type", "is required")
		default:
			add(fieldPrefix+".type", fmt.Sprintf("unsupported type %q", task.Type))
		}

		agent := strings.TrimSpace(task.Agent)
		if agent == "" {
			add(fieldPrefix+".agent", "is required")
		} else if _, ok := agentIDs[agent]; !ok {
			add(fieldPrefix+".agent", fmt.Sprintf("unknown agent %q", agent))
		}

		switch task.Format.Style {
		case "token_efficient", "labeled", "":
		default:
			add(fieldPrefix+".format.style", fmt.Sprintf("unsupported style %q", task.Format.Style))
		}
		if task.Format.MaxRows < 0 {
			add(fieldPrefix+".format.max_rows", "must be >= 0")
		}
		if task.Limit < 0 {
			add(fieldPrefix+".limit", "must be >= 0")
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func validateAgents(cfg *spec.Config, add func(field, message string)) map[string]struct{} {
	agentIDs := map[string]struct{}{}
	if len(cfg.Agents) == 0 {
		add("agents", "at least one agent is required")
	}
	for i, agent := range cfg.Agents {
		fieldPrefix := fmt.Sprintf("agents[%d]", i)
		id := strings.TrimSpace(agent.ID)
		if id == "" {
			add(fieldPrefix+".id", "is required")
		} else if _, exists := agentIDs[id]; exists {
			add("agents.id", fmt.Sprintf("duplicate id %q", id))
		} else {
			agentIDs[id] = struct{}{}
		}
		if agent.Type == "" {
			add(fieldPrefix+".type", "is required")
		} else if agent.Type != "builtin" {
			add(fieldPrefix+".type", fmt.Sprintf("unsupported type %q", agent.Type))
		}
		if strings.TrimSpace(agent.Provider) == "" {
			add(fieldPrefix+".provider", "is required")
		} else if agent.Provider != "openrouter" {
			add(fieldPrefix+".provider", fmt.Sprintf("unsupported provider %q", agent.Provider))
		}
		if strings.TrimSpace(agent.Model) == "" {
			add(fieldPrefix+".model", "is required")
		}
		if agent.MaxTokens < 0 {
			add(fieldPrefix+".max_tokens", "must be >= 0")
		}
	}

	defaultAgent := strings.TrimSpace(cfg.DefaultAgent)
	if defaultAgent == "" {
		add("default_agent", "is required")
	} else if _, ok := agentIDs[defaultAgent]; !ok {
		add("default_agent", fmt.Sprintf("unknown agent %q", defaultAgent))
	}
	return agentIDs
}
