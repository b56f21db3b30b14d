package grok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	temperature   = 0.7
	maxTokens     = 4000
	maxToolRounds = 3

	noContent = "No response content."
)

type Client struct {
	URL   string
	Model string

	key      string
	http     *http.Client
	searcher Searcher
}

type Option func(*Client)

// WithSearcher replaces the backend used to answer web_search tool calls.
func WithSearcher(s Searcher) Option {
	return func(c *Client) { c.searcher = s }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func New(url, key, model string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	c := &Client{
		URL:      strings.TrimRight(url, "/"),
		Model:    model,
		key:      key,
		http:     &http.Client{Timeout: 90 * time.Second},
		searcher: StaticSearcher{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Research asks the model about query and resolves any web_search tool
// calls before returning the final answer.
func (c *Client) Research(ctx context.Context, query, messageLink string) (string, error) {
	req := ChatRequest{
		Model: c.Model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt(query, messageLink)},
			{Role: RoleUser, Content: query},
		},
		Tools:       researchTools,
		ToolChoice:  "auto",
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	for round := 0; ; round++ {
		msg, err := c.complete(ctx, req)
		if err != nil {
			return "", err
		}
		if len(msg.ToolCalls) == 0 || round == maxToolRounds {
			if strings.TrimSpace(msg.Content) == "" {
				return noContent, nil
			}
			return msg.Content, nil
		}

		req.Messages = append(req.Messages, msg)
		for _, call := range msg.ToolCalls {
			req.Messages = append(req.Messages, Message{
				Role:       RoleTool,
				ToolCallID: call.ID,
				Content:    c.runTool(ctx, call),
			})
		}
	}
}

func (c *Client) runTool(ctx context.Context, call ToolCall) string {
	if call.Function.Name != webSearchTool {
		return fmt.Sprintf("Tool %q is not available.", call.Function.Name)
	}

	var args searchArgs
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return "Invalid web_search arguments: " + err.Error()
		}
	}
	if args.NumResults <= 0 {
		args.NumResults = 5
	}

	res, err := c.searcher.Search(ctx, args.Query, args.NumResults)
	if err != nil {
		return "Search failed: " + err.Error()
	}
	return res
}

// complete posts one chat completion and returns the first choice's message.
func (c *Client) complete(ctx context.Context, payload ChatRequest) (Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return Message{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Message{}, fmt.Errorf("grok request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Message{}, fmt.Errorf("read response: %w", err)
	}

	var out ChatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Message{}, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return Message{}, fmt.Errorf("decode response: %w", err)
	}

	if len(out.Choices) == 0 {
		msg := "Unknown API error"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		apiErr := &APIError{Message: msg}
		if resp.StatusCode != http.StatusOK {
			apiErr.Status = resp.StatusCode
		}
		return Message{}, apiErr
	}

	return out.Choices[0].Message, nil
}
