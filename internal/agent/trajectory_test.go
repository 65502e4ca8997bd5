package agent

import (
	"encoding/json"
	"testing"
)

func TestDecodeTrajectoryKeyed(t *testing.T) {
	raw := json.RawMessage(`{
		"thought_0": "need the population column",
		"tool_name_0": "headers",
		"tool_args_0": {},
		"observation_0": "city, population",
		"thought_1": "look up tokyo",
		"tool_name_1": "search_rows",
		"tool_args_1": {"term": "tokyo"}
	}`)
	steps := DecodeTrajectory(raw)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Step != 1 || steps[0].Reasoning != "need the population column" {
		t.Fatalf("unexpected first step: %+v", steps[0])
	}
	if steps[0].ToolCall == nil || steps[0].ToolCall.Name != "headers" {
		t.Fatalf("unexpected first tool call: %+v", steps[0].ToolCall)
	}
	if steps[1].ToolCall == nil || steps[1].ToolCall.Args["term"] != "tokyo" {
		t.Fatalf("unexpected second tool call: %+v", steps[1].ToolCall)
	}
}

func TestDecodeTrajectoryList(t *testing.T) {
	raw := json.RawMessage(`[
		{"reasoning": "check headers", "tool_name": "headers"},
		{"rationale": "count rows", "tool_name": "row_count", "tool_input": {"exact": true}},
		{"note": "nothing usable"}
	]`)
	steps := DecodeTrajectory(raw)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Reasoning != "check headers" {
		t.Fatalf("unexpected reasoning: %q", steps[0].Reasoning)
	}
	if steps[1].Step != 2 {
		t.Fatalf("unexpected step number: %d", steps[1].Step)
	}
	if steps[1].ToolCall == nil || steps[1].ToolCall.Args["exact"] != true {
		t.Fatalf("unexpected tool call: %+v", steps[1].ToolCall)
	}
}

func TestDecodeTrajectoryUnknownShape(t *testing.T) {
	if steps := DecodeTrajectory(json.RawMessage(`"free text"`)); steps != nil {
		t.Fatalf("expected nil for scalar payload, got %+v", steps)
	}
	if steps := DecodeTrajectory(nil); steps != nil {
		t.Fatalf("expected nil for empty payload, got %+v", steps)
	}
}

func TestDecodeTrajectoryKeyedToolOnlyStep(t *testing.T) {
	raw := json.RawMessage(`{"tool_name_0": "headers"}`)
	steps := DecodeTrajectory(raw)
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].Reasoning != "" || steps[0].ToolCall == nil {
		t.Fatalf("unexpected step: %+v", steps[0])
	}
}
