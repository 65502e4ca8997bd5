package agent

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DecodeTrajectory normalizes an external agent framework's trajectory
// payload into TrajectorySteps. Two shapes are accepted: a flat object with
// thought_N / tool_name_N / tool_args_N keys, and a list of step objects
// with reasoning and tool call fields under a handful of known names.
// Anything else yields an empty trajectory rather than an error; the
// trajectory is diagnostic, never load-bearing.
func DecodeTrajectory(raw json.RawMessage) []TrajectoryStep {
	if len(raw) == 0 {
		return nil
	}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return decodeKeyedTrajectory(asMap)
	}

	var asList []json.RawMessage
	if err := json.Unmarshal(raw, &asList); err == nil {
		return decodeListTrajectory(asList)
	}
	return nil
}

// decodeKeyedTrajectory handles the flat thought_N / tool_name_N shape.
func decodeKeyedTrajectory(fields map[string]json.RawMessage) []TrajectoryStep {
	stepNumbers := make([]int, 0, len(fields))
	seen := map[int]struct{}{}
	for key := range fields {
		rest, ok := strings.CutPrefix(key, "thought_")
		if !ok {
			rest, ok = strings.CutPrefix(key, "tool_name_")
		}
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if _, dup := seen[n]; !dup {
			seen[n] = struct{}{}
			stepNumbers = append(stepNumbers, n)
		}
	}
	sort.Ints(stepNumbers)

	steps := make([]TrajectoryStep, 0, len(stepNumbers))
	for _, n := range stepNumbers {
		step := TrajectoryStep{Step: n + 1}
		step.Reasoning = decodeString(fields[fmt.Sprintf("thought_%d", n)])
		if name := decodeString(fields[fmt.Sprintf("tool_name_%d", n)]); name != "" {
			call := ToolCall{Name: name}
			if argsRaw, ok := fields[fmt.Sprintf("tool_args_%d", n)]; ok {
				var args map[string]any
				if json.Unmarshal(argsRaw, &args) == nil {
					call.Args = args
				}
			}
			step.ToolCall = &call
		}
		if step.Reasoning == "" && step.ToolCall == nil {
			continue
		}
		steps = append(steps, step)
	}
	return steps
}

// decodeListTrajectory handles list-of-step payloads with varying field names.
func decodeListTrajectory(items []json.RawMessage) []TrajectoryStep {
	steps := make([]TrajectoryStep, 0, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if json.Unmarshal(item, &fields) != nil {
			continue
		}
		step := TrajectoryStep{Step: i + 1}
		for _, key := range []string{"thought", "reasoning", "rationale", "reason"} {
			if text := decodeString(fields[key]); text != "" {
				step.Reasoning = text
				break
			}
		}
		if name := decodeString(fields["tool_name"]); name != "" {
			call := ToolCall{Name: name}
			for _, key := range []string{"tool_args", "tool_input", "args"} {
				if argsRaw, ok := fields[key]; ok {
					var args map[string]any
					if json.Unmarshal(argsRaw, &args) == nil {
						call.Args = args
						break
					}
				}
			}
			step.ToolCall = &call
		}
		if step.Reasoning == "" && step.ToolCall == nil {
			continue
		}
		steps = append(steps, step)
	}
	return steps
}

func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
