package runner

import "time"

type Results struct {
	RunID      string          `json:"run_id"`
	Dataset    DatasetMetadata `json:"dataset"`
	Agents     []AgentInfo     `json:"agents"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Tasks      []TaskResult    `json:"tasks"`
	Summary    RunSummary      `json:"summary"`
}

type DatasetMetadata struct {
	DataDir       string `json:"data_dir"`
	Split         string `json:"split"`
	ExamplesTotal int    `json:"examples_total"`
	MaxTableBytes int    `json:"max_table_bytes"`
}

type AgentInfo struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type TaskResult struct {
	TaskID        string       `json:"task_id"`
	Type          string       `json:"type"`
	Status        string       `json:"status"`
	FailureReason *string      `json:"failure_reason"`
	AgentID       string       `json:"agent_id"`
	Model         string       `json:"model"`
	Eval          *ExampleEval `json:"eval,omitempty"`
}

// ExampleEval contains per-example evaluation results for one task.
type ExampleEval struct {
	Examples []ExampleResult `json:"examples"`
	Summary  ExampleSummary  `json:"summary"`
}

// ExampleResult records the outcome of a single example.
type ExampleResult struct {
	ID              string   `json:"id,omitempty"`
	Question        string   `json:"question"`
	Gold            []string `json:"gold"`
	TableName       string   `json:"table_name,omitempty"`
	RawAnswer       string   `json:"pred_text"`
	Predictions     []string `json:"pred_items"`
	Correct         bool     `json:"correct"`
	Skipped         bool     `json:"skipped,omitempty"`
	SkipReason      string   `json:"skip_reason,omitempty"`
	RunError        string   `json:"run_error,omitempty"`
	ToolCalls       int      `json:"tool_calls,omitempty"`
	TokensIn        int      `json:"tokens_in,omitempty"`
	TokensOut       int      `json:"tokens_out,omitempty"`
	WallTimeSeconds float64  `json:"wall_time_seconds,omitempty"`
}

// ExampleSummary aggregates accuracy metrics for a task's examples.
type ExampleSummary struct {
	ExamplesTotal      int     `json:"examples_total"`
	ExamplesCorrect    int     `json:"examples_correct"`
	ExamplesIncorrect  int     `json:"examples_incorrect"`
	ExamplesSkipped    int     `json:"examples_skipped"`
	MultiAnswerCount   int     `json:"multi_answer_count"`
	DenotationAccuracy float64 `json:"denotation_accuracy"`
}

type RunSummary struct {
	TasksTotal      int     `json:"tasks_total"`
	TasksPassed     int     `json:"tasks_passed"`
	TasksFailed     int     `json:"tasks_failed"`
	PassRate        float64 `json:"pass_rate"`
	ExamplesTotal   int     `json:"examples_total"`
	ExamplesCorrect int     `json:"examples_correct"`
	Accuracy        float64 `json:"accuracy"`
	TokensTotal     int     `json:"tokens_total"`
}
