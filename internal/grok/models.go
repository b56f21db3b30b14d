package grok

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultURL   = "https://api.x.ai/v1/chat/completions"
	DefaultModel = "grok-4-1-fast-reasoning"
)

// ValidModels are the chat models the bot accepts.
var ValidModels = []string{
	"grok-4-1-fast-reasoning",     // tool calling + reasoning
	"grok-4-1-fast-non-reasoning", // fast generation
	"grok-code-fast-1",            // code
}

var ErrInvalidModel = errors.New("invalid model")

func ValidateModel(model string) error {
	for _, m := range ValidModels {
		if m == model {
			return nil
		}
	}
	return fmt.Errorf("%w %q: must be one of: %s", ErrInvalidModel, model, strings.Join(ValidModels, ", "))
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type Tool struct {
	Type     string      `json:"type"`
	Function FunctionDef `json:"function"`
}

type FunctionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Tools       []Tool    `json:"tools,omitempty"`
	ToolChoice  string    `json:"tool_choice,omitempty"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type ChatResponse struct {
	Choices []Choice   `json:"choices"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// APIError is returned when a completion response carries no choices.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("grok api error (status %d): %s", e.Status, e.Message)
	}
	return "grok api error: " + e.Message
}

const webSearchTool = "web_search"

var researchTools = []Tool{
	{
		Type: "function",
		Function: FunctionDef{
			Name:        webSearchTool,
			Description: "Search the web for real-time information to ground your response.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query":       map[string]any{"type": "string", "description": "The search query."},
					"num_results": map[string]any{"type": "integer", "description": "Number of results (default 5)."},
				},
				"required": []string{"query"},
			},
		},
	},
}

type searchArgs struct {
	Query      string `json:"query"`
	NumResults int    `json:"num_results"`
}
