package agent

import (
	"context"
	"net/http"
)

// Request carries a single table question to a provider.
type Request struct {
	Instructions string
	TableText    string
	Question     string
	Tools        []ToolDefinition
}

// Response is the provider's answer to a single question. Trajectory is
// populated when the provider reports intermediate reasoning steps.
type Response struct {
	Answer     string
	Trajectory []TrajectoryStep
	TokensIn   int
	TokensOut  int
}

// Provider answers one table question per call.
type Provider interface {
	Answer(ctx context.Context, req Request) (Response, error)
}

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ToolDefinition describes a function tool exposed to the model. Handler
// runs the tool locally when the model calls it; calls to a tool without a
// handler are reported back to the model as errors.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *ToolSchema
	Handler     func(args map[string]any) (string, error)
}

// ToolCall is a tool invocation recorded in a trajectory.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// TrajectoryStep is one step in an agent's reasoning trace.
type TrajectoryStep struct {
	Step      int       `json:"step"`
	Reasoning string    `json:"reasoning,omitempty"`
	ToolCall  *ToolCall `json:"tool_call,omitempty"`
}

// ToolSchema describes the JSON schema for tool parameters.
type ToolSchema struct {
	Type                 string                `json:"type,omitempty"`
	Properties           map[string]ToolSchema `json:"properties,omitempty"`
	Items                *ToolSchema           `json:"items,omitempty"`
	Required             []string              `json:"required,omitempty"`
	AdditionalProperties *bool                 `json:"additionalProperties,omitempty"`
}

// BoolPointer returns a pointer to the provided bool value.
func BoolPointer(value bool) *bool {
	return &value
}

// ObjectSchema builds a schema for a JSON object.
func ObjectSchema(properties map[string]ToolSchema, required []string, additionalProperties *bool) ToolSchema {
	return ToolSchema{
		Type:                 "object",
		Properties:           properties,
		Required:             required,
		AdditionalProperties: additionalProperties,
	}
}

// StringSchema builds a schema for a JSON string.
func StringSchema() ToolSchema {
	return ToolSchema{Type: "string"}
}

// IntegerSchema builds a schema for a JSON integer.
func IntegerSchema() ToolSchema {
	return ToolSchema{Type: "integer"}
}
