package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"wtqbench/internal/runner"
)

// UpsertAgent inserts an agent by its fingerprint key and returns its id.
// Re-ingesting the same agent spec is a no-op.
func UpsertAgent(ctx context.Context, db *sql.DB, info runner.AgentInfo) (string, error) {
	if db == nil {
		return "", errors.New("duckdb: db is nil")
	}
	canonical, err := CanonicalJSON(map[string]interface{}{
		"id":          info.ID,
		"type":        info.Type,
		"provider":    info.Provider,
		"model":       info.Model,
		"temperature": info.Temperature,
		"max_tokens":  info.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	key := fingerprintBytes(canonical)
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO agents (agent_id, agent_key, spec, display_name, created_at)
		 VALUES (?, ?, ?, ?, now())
		 ON CONFLICT (agent_key) DO NOTHING`,
		uuid.NewString(),
		key,
		string(canonical),
		info.ID,
	); err != nil {
		return "", fmt.Errorf("upsert agent: %w", err)
	}
	var id string
	if err := db.QueryRowContext(ctx,
		`SELECT CAST(agent_id AS VARCHAR) FROM agents WHERE agent_key = ?`, key).Scan(&id); err != nil {
		return "", fmt.Errorf("lookup agent id: %w", err)
	}
	return id, nil
}

// IngestResults loads a full run record into the warehouse. Ingesting the
// same run twice is a no-op for the run row and its task rows.
func IngestResults(ctx context.Context, db *sql.DB, results runner.Results) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if results.RunID == "" {
		return errors.New("duckdb: run id is empty")
	}

	agentIDs := make(map[string]string, len(results.Agents))
	for _, info := range results.Agents {
		id, err := UpsertAgent(ctx, db, info)
		if err != nil {
			return err
		}
		agentIDs[info.ID] = id
	}

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, started_at, finished_at, data_dir, split_file,
		                   examples_total, accuracy, tokens_total, results)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id) DO NOTHING`,
		results.RunID,
		results.StartedAt,
		results.FinishedAt,
		results.Dataset.DataDir,
		results.Dataset.Split,
		results.Summary.ExamplesTotal,
		results.Summary.Accuracy,
		results.Summary.TokensTotal,
		string(resultsJSON),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, task := range results.Tasks {
		if err := ingestTask(ctx, db, results.RunID, task, agentIDs); err != nil {
			return err
		}
	}
	return nil
}

func ingestTask(ctx context.Context, db *sql.DB, runID string, task runner.TaskResult, agentIDs map[string]string) error {
	summary := runner.ExampleSummary{}
	if task.Eval != nil {
		summary = task.Eval.Summary
	}
	var agentID interface{}
	if id, ok := agentIDs[task.AgentID]; ok {
		agentID = id
	}
	var failureReason interface{}
	if task.FailureReason != nil {
		failureReason = *task.FailureReason
	}

	taskRunID := uuid.NewString()
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO task_runs (task_run_id, run_id, task_id, task_type, agent_id,
		                        status, failure_reason, examples_total,
		                        examples_correct, examples_skipped, denotation_accuracy)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, task_id) DO NOTHING`,
		taskRunID,
		runID,
		task.TaskID,
		task.Type,
		agentID,
		task.Status,
		failureReason,
		summary.ExamplesTotal,
		summary.ExamplesCorrect,
		summary.ExamplesSkipped,
		summary.DenotationAccuracy,
	); err != nil {
		return fmt.Errorf("insert task run: %w", err)
	}

	// The upsert may have kept an earlier row; predictions hang off the
	// stored task_run_id.
	var storedID string
	if err := db.QueryRowContext(ctx,
		`SELECT CAST(task_run_id AS VARCHAR) FROM task_runs WHERE run_id = ? AND task_id = ?`,
		runID, task.TaskID).Scan(&storedID); err != nil {
		return fmt.Errorf("lookup task run id: %w", err)
	}
	if storedID != taskRunID || task.Eval == nil {
		return nil
	}

	for _, example := range task.Eval.Examples {
		gold, err := json.Marshal(example.Gold)
		if err != nil {
			return fmt.Errorf("marshal gold: %w", err)
		}
		items, err := json.Marshal(example.Predictions)
		if err != nil {
			return fmt.Errorf("marshal pred items: %w", err)
		}
		var runError interface{}
		if example.RunError != "" {
			runError = example.RunError
		}
		if _, err := db.ExecContext(
			ctx,
			`INSERT INTO predictions (prediction_id, task_run_id, example_id, question,
			                          gold, pred_text, pred_items, table_name,
			                          correct, skipped, run_error, tokens_in, tokens_out)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			storedID,
			example.ID,
			example.Question,
			string(gold),
			example.RawAnswer,
			string(items),
			example.TableName,
			example.Correct,
			example.Skipped,
			runError,
			example.TokensIn,
			example.TokensOut,
		); err != nil {
			return fmt.Errorf("insert prediction: %w", err)
		}
	}
	return nil
}
