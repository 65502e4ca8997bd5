package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type fakeDoer struct {
	status   int
	body     string
	lastBody []byte
	lastReq  *http.Request
}

func (d *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	d.lastReq = req
	if req.Body != nil {
		d.lastBody, _ = io.ReadAll(req.Body)
	}
	status := d.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(d.body))),
	}, nil
}

func TestOpenRouterAnswer(t *testing.T) {
	doer := &fakeDoer{body: `{
		"choices": [{"message": {"role": "assistant", "content": " 37400068 "}}],
		"usage": {"prompt_tokens": 120, "completion_tokens": 5}
	}`}
	provider, err := NewOpenRouterProvider("gpt-4.1-mini", "test-key", "", doer)
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}

	resp, err := provider.Answer(context.Background(), Request{
		Instructions: "Answer from the table.",
		TableText:    "city|population\ntokyo|37400068",
		Question:     "what is the population of tokyo?",
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if resp.Answer != "37400068" {
		t.Fatalf("unexpected answer: %q", resp.Answer)
	}
	if resp.TokensIn != 120 || resp.TokensOut != 5 {
		t.Fatalf("unexpected usage: %d/%d", resp.TokensIn, resp.TokensOut)
	}

	if got := doer.lastReq.Header.Get("Authorization"); got != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", got)
	}
	if !strings.HasSuffix(doer.lastReq.URL.String(), "/chat/completions") {
		t.Fatalf("unexpected endpoint: %s", doer.lastReq.URL)
	}

	var sent openRouterRequest
	if err := json.Unmarshal(doer.lastBody, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if len(sent.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(sent.Messages))
	}
	if sent.Messages[0].Role != "system" {
		t.Fatalf("unexpected first role: %q", sent.Messages[0].Role)
	}
	if !strings.Contains(sent.Messages[1].Content, "Question: what is the population of tokyo?") {
		t.Fatalf("user message missing question: %q", sent.Messages[1].Content)
	}
	if !strings.Contains(sent.Messages[1].Content, "city|population") {
		t.Fatalf("user message missing table: %q", sent.Messages[1].Content)
	}
}

func TestOpenRouterAnswerError(t *testing.T) {
	doer := &fakeDoer{status: http.StatusTooManyRequests, body: `{"error": "rate limited"}`}
	provider, err := NewOpenRouterProvider("gpt-4.1-mini", "test-key", "", doer)
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	_, err = provider.Answer(context.Background(), Request{Question: "q"})
	if err == nil || !strings.Contains(err.Error(), "openrouter error") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenRouterToolsIncluded(t *testing.T) {
	doer := &fakeDoer{body: `{"choices": [{"message": {"content": "ok"}}]}`}
	provider, err := NewOpenRouterProvider("gpt-4.1-mini", "test-key", "", doer)
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	_, err = provider.Answer(context.Background(), Request{
		Question: "q",
		Tools: []ToolDefinition{{
			Name:        "headers",
			Description: "List the table's column headers.",
		}},
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	var sent openRouterRequest
	if err := json.Unmarshal(doer.lastBody, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if len(sent.Tools) != 1 || sent.Tools[0].Function.Name != "headers" {
		t.Fatalf("unexpected tools: %+v", sent.Tools)
	}
	if sent.ToolChoice != "auto" {
		t.Fatalf("unexpected tool_choice: %q", sent.ToolChoice)
	}
	if sent.Tools[0].Function.Parameters == nil || sent.Tools[0].Function.Parameters.Type != "object" {
		t.Fatalf("expected default object schema")
	}
}

// scriptedDoer replays a sequence of response bodies, recording each request.
type scriptedDoer struct {
	bodies []string
	sent   [][]byte
}

func (d *scriptedDoer) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	d.sent = append(d.sent, body)
	reply := d.bodies[0]
	if len(d.bodies) > 1 {
		d.bodies = d.bodies[1:]
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader([]byte(reply))),
	}, nil
}

func TestOpenRouterAnswerRunsToolCalls(t *testing.T) {
	doer := &scriptedDoer{bodies: []string{
		`{
			"choices": [{"message": {
				"role": "assistant",
				"content": "",
				"tool_calls": [{
					"id": "call_1",
					"type": "function",
					"function": {"name": "search_rows", "arguments": "{\"term\": \"tokyo\"}"}
				}]
			}}],
			"usage": {"prompt_tokens": 100, "completion_tokens": 10}
		}`,
		`{
			"choices": [{"message": {"role": "assistant", "content": "37400068"}}],
			"usage": {"prompt_tokens": 150, "completion_tokens": 5}
		}`,
	}}
	provider, err := NewOpenRouterProvider("gpt-4.1-mini", "test-key", "", doer)
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}

	var gotTerm string
	resp, err := provider.Answer(context.Background(), Request{
		Question: "what is the population of tokyo?",
		Tools: []ToolDefinition{{
			Name:        "search_rows",
			Description: "Return rows where any cell contains the search term.",
			Handler: func(args map[string]any) (string, error) {
				gotTerm, _ = args["term"].(string)
				return "tokyo | 37400068", nil
			},
		}},
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if resp.Answer != "37400068" {
		t.Fatalf("unexpected answer: %q", resp.Answer)
	}
	if gotTerm != "tokyo" {
		t.Fatalf("handler saw term %q", gotTerm)
	}
	if resp.TokensIn != 250 || resp.TokensOut != 15 {
		t.Fatalf("usage not accumulated across rounds: %d/%d", resp.TokensIn, resp.TokensOut)
	}
	if len(resp.Trajectory) != 1 {
		t.Fatalf("expected one trajectory step, got %d", len(resp.Trajectory))
	}
	step := resp.Trajectory[0]
	if step.Step != 1 || step.ToolCall == nil || step.ToolCall.Name != "search_rows" {
		t.Fatalf("unexpected trajectory step: %+v", step)
	}
	if step.ToolCall.Args["term"] != "tokyo" {
		t.Fatalf("unexpected tool args: %+v", step.ToolCall.Args)
	}

	if len(doer.sent) != 2 {
		t.Fatalf("expected two requests, got %d", len(doer.sent))
	}
	var second openRouterRequest
	if err := json.Unmarshal(doer.sent[1], &second); err != nil {
		t.Fatalf("decode second request: %v", err)
	}
	if len(second.Messages) != 3 {
		t.Fatalf("expected user + assistant + tool messages, got %d", len(second.Messages))
	}
	assistant := second.Messages[1]
	if assistant.Role != "assistant" || len(assistant.ToolCalls) != 1 {
		t.Fatalf("assistant tool calls not echoed back: %+v", assistant)
	}
	result := second.Messages[2]
	if result.Role != "tool" || result.ToolCallID != "call_1" {
		t.Fatalf("tool result not linked to call: %+v", result)
	}
	if result.Content != "tokyo | 37400068" {
		t.Fatalf("unexpected tool output: %q", result.Content)
	}
}

func TestOpenRouterAnswerUnknownTool(t *testing.T) {
	doer := &scriptedDoer{bodies: []string{
		`{
			"choices": [{"message": {
				"role": "assistant",
				"tool_calls": [{
					"id": "call_1",
					"type": "function",
					"function": {"name": "mystery", "arguments": "{}"}
				}]
			}}]
		}`,
		`{"choices": [{"message": {"content": "done"}}]}`,
	}}
	provider, err := NewOpenRouterProvider("gpt-4.1-mini", "test-key", "", doer)
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	resp, err := provider.Answer(context.Background(), Request{Question: "q"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if resp.Answer != "done" {
		t.Fatalf("unexpected answer: %q", resp.Answer)
	}
	var second openRouterRequest
	if err := json.Unmarshal(doer.sent[1], &second); err != nil {
		t.Fatalf("decode second request: %v", err)
	}
	last := second.Messages[len(second.Messages)-1]
	if last.Role != "tool" || !strings.Contains(last.Content, "unknown tool") {
		t.Fatalf("unknown tool not reported to the model: %+v", last)
	}
}

func TestNewOpenRouterProviderValidation(t *testing.T) {
	if _, err := NewOpenRouterProvider("", "key", "", nil); err == nil {
		t.Fatalf("expected error for missing model")
	}
	if _, err := NewOpenRouterProvider("model", "", "", nil); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
