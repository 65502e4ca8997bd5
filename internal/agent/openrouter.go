package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// defaultOpenRouterBaseURL is the default OpenRouter API base URL.
const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider implements Provider for the OpenRouter API.
type OpenRouterProvider struct {
	APIKey      string
	BaseURL     string
	Client      HTTPDoer
	Model       string
	MaxTokens   int
	Temperature float64
}

// ProviderFromEnv builds a provider using environment configuration.
func ProviderFromEnv(provider, model string, client HTTPDoer) (Provider, error) {
	if provider == "" {
		provider = strings.TrimSpace(os.Getenv("LLM_PROVIDER"))
	}
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}
	if provider != "openrouter" {
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
	apiKey := strings.TrimSpace(os.Getenv("LLM_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	return NewOpenRouterProvider(model, apiKey, "", client)
}

// NewOpenRouterProvider constructs an OpenRouter provider with explicit settings.
func NewOpenRouterProvider(model, apiKey, baseURL string, client HTTPDoer) (*OpenRouterProvider, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenRouterProvider{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		Model:   model,
	}, nil
}

// maxToolRounds caps how many tool-call rounds a single Answer may take
// before the latest content is returned as-is.
const maxToolRounds = 8

// Answer sends one table question to OpenRouter and returns the final text.
// When the model calls tools, their handlers run locally and the outputs are
// fed back to the model until it produces a plain answer. Each executed tool
// call is recorded as one trajectory step.
func (p *OpenRouterProvider) Answer(ctx context.Context, req Request) (Response, error) {
	messages := buildOpenRouterMessages(req)
	handlers := toolHandlers(req.Tools)
	var result Response
	for round := 0; ; round++ {
		message, usage, err := p.complete(ctx, messages, req.Tools)
		if err != nil {
			return Response{}, err
		}
		result.TokensIn += usage.PromptTokens
		result.TokensOut += usage.CompletionTokens
		if len(message.ToolCalls) == 0 || round >= maxToolRounds {
			result.Answer = strings.TrimSpace(message.Content)
			return result, nil
		}
		messages = append(messages, message)
		for _, call := range message.ToolCalls {
			args := decodeToolArgs(call.Function.Arguments)
			result.Trajectory = append(result.Trajectory, TrajectoryStep{
				Step:      len(result.Trajectory) + 1,
				Reasoning: strings.TrimSpace(message.Content),
				ToolCall:  &ToolCall{Name: call.Function.Name, Args: args},
			})
			messages = append(messages, openRouterMessage{
				Role:       "tool",
				Content:    runTool(handlers, call.Function.Name, args),
				ToolCallID: call.ID,
			})
		}
	}
}

// complete performs one chat-completions round trip.
func (p *OpenRouterProvider) complete(ctx context.Context, messages []openRouterMessage, tools []ToolDefinition) (openRouterMessage, openRouterUsage, error) {
	requestBody := openRouterRequest{
		Model:    p.Model,
		Messages: messages,
	}
	if p.MaxTokens > 0 {
		requestBody.MaxTokens = p.MaxTokens
	}
	if p.Temperature != 0 {
		requestBody.Temperature = &p.Temperature
	}
	if len(tools) > 0 {
		requestBody.Tools = buildOpenRouterTools(tools)
		requestBody.ToolChoice = "auto"
	}
	payload, err := json.Marshal(requestBody)
	if err != nil {
		return openRouterMessage{}, openRouterUsage{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := p.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return openRouterMessage{}, openRouterUsage{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return openRouterMessage{}, openRouterUsage{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return openRouterMessage{}, openRouterUsage{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return openRouterMessage{}, openRouterUsage{}, fmt.Errorf("openrouter error: %s", strings.TrimSpace(string(body)))
	}

	var parsed openRouterResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return openRouterMessage{}, openRouterUsage{}, fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return openRouterMessage{}, openRouterUsage{}, fmt.Errorf("openrouter response has no choices")
	}
	return parsed.Choices[0].Message, parsed.Usage, nil
}

// toolHandlers indexes the executable tools by name.
func toolHandlers(defs []ToolDefinition) map[string]func(map[string]any) (string, error) {
	handlers := make(map[string]func(map[string]any) (string, error), len(defs))
	for _, def := range defs {
		if def.Handler != nil {
			handlers[def.Name] = def.Handler
		}
	}
	return handlers
}

// runTool executes a named tool and renders its output for the model.
// Failures become tool output text so the model can recover in-band.
func runTool(handlers map[string]func(map[string]any) (string, error), name string, args map[string]any) string {
	handler, ok := handlers[name]
	if !ok {
		return fmt.Sprintf("error: unknown tool %q", name)
	}
	output, err := handler(args)
	if err != nil {
		return "error: " + err.Error()
	}
	return output
}

// decodeToolArgs parses a tool call's JSON argument string. Malformed
// payloads decode to nil rather than failing the run.
func decodeToolArgs(raw string) map[string]any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil
	}
	return args
}

// openRouterRequest is the JSON payload sent to OpenRouter.
type openRouterRequest struct {
	Model       string              `json:"model"`
	Messages    []openRouterMessage `json:"messages"`
	Tools       []openRouterTool    `json:"tools,omitempty"`
	ToolChoice  string              `json:"tool_choice,omitempty"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature *float64            `json:"temperature,omitempty"`
}

// openRouterMessage represents a single OpenRouter chat message. Assistant
// messages may carry tool calls; "tool" role messages answer them by ID.
type openRouterMessage struct {
	Role       string               `json:"role"`
	Content    string               `json:"content"`
	ToolCalls  []openRouterToolCall `json:"tool_calls,omitempty"`
	ToolCallID string               `json:"tool_call_id,omitempty"`
}

// openRouterToolCall is a model-issued function call.
type openRouterToolCall struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Function openRouterFunctionCall `json:"function"`
}

// openRouterFunctionCall carries the called function name and its raw JSON
// argument string.
type openRouterFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// openRouterTool describes a function tool for OpenRouter.
type openRouterTool struct {
	Type     string                       `json:"type"`
	Function openRouterFunctionDefinition `json:"function"`
}

// openRouterFunctionDefinition describes a tool's function signature.
type openRouterFunctionDefinition struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  *ToolSchema `json:"parameters,omitempty"`
}

// openRouterResponse is the non-streaming completion payload.
type openRouterResponse struct {
	Choices []openRouterChoice `json:"choices"`
	Usage   openRouterUsage    `json:"usage"`
}

type openRouterChoice struct {
	Message openRouterMessage `json:"message"`
}

type openRouterUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// buildOpenRouterMessages converts a request into OpenRouter message payloads.
func buildOpenRouterMessages(req Request) []openRouterMessage {
	messages := make([]openRouterMessage, 0, 2)
	if strings.TrimSpace(req.Instructions) != "" {
		messages = append(messages, openRouterMessage{
			Role:    "system",
			Content: req.Instructions,
		})
	}
	user := req.Question
	if strings.TrimSpace(req.TableText) != "" {
		user = req.TableText + "\n\nQuestion: " + req.Question
	}
	messages = append(messages, openRouterMessage{Role: "user", Content: user})
	return messages
}

// buildOpenRouterTools converts tool definitions into OpenRouter tool payloads.
func buildOpenRouterTools(defs []ToolDefinition) []openRouterTool {
	tools := make([]openRouterTool, 0, len(defs))
	for _, def := range defs {
		params := def.Parameters
		if params == nil {
			defaultSchema := ToolSchema{Type: "object"}
			params = &defaultSchema
		}
		tools = append(tools, openRouterTool{
			Type: "function",
			Function: openRouterFunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  params,
			},
		})
	}
	return tools
}
