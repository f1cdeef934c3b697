package logservice

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/logsleuth/logsleuth/pkg/agent/tools"
)

const fetchToolName = "fetch_error_log"

// Truncator caps text at a token budget. Satisfied by tokenizer.Tokenizer.
type Truncator interface {
	Truncate(text string, maxTokens int) string
}

// FetchTool exposes log fetching to the agent as the fetch_error_log tool.
type FetchTool struct {
	client    *Client
	truncator Truncator
	maxTokens int
}

// FetchToolOption configures a FetchTool.
type FetchToolOption func(*FetchTool)

// WithResultBudget caps the tool result at maxTokens so oversized logs
// don't blow the model's context window.
func WithResultBudget(tr Truncator, maxTokens int) FetchToolOption {
	return func(t *FetchTool) {
		t.truncator = tr
		t.maxTokens = maxTokens
	}
}

// NewFetchTool creates a fetch tool backed by the given client.
func NewFetchTool(client *Client, opts ...FetchToolOption) *FetchTool {
	t := &FetchTool{client: client}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the tool's identifier
func (t *FetchTool) Name() string {
	return fetchToolName
}

// Description returns a description of what this tool does
func (t *FetchTool) Description() string {
	return "Fetch the raw error log text for an event ID. " +
		"Returns unstructured log text containing timestamps, error codes, stack context and request parameters. " +
		"Parse it yourself to extract the failing module, error code and user context."
}

// Schema returns the JSON schema for the tool's arguments
func (t *FetchTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"event_id": map[string]interface{}{
				"type":        "string",
				"description": "The unique identifier of the error event, e.g. EVT-2025121800042",
			},
		},
		[]string{"event_id"},
	)
}

// Execute fetches the log and returns its text.
func (t *FetchTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName xml.Name `xml:"arguments"`
		EventID string   `xml:"event_id"`
	}

	if err := tools.UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for %s: %w", fetchToolName, err)
	}

	if args.EventID == "" {
		return "", nil, fmt.Errorf("event_id cannot be empty")
	}

	detail, err := t.client.Fetch(ctx, args.EventID)
	if err != nil {
		// Auth failures are reported to the LLM as content so it can tell
		// the user exactly what to fix instead of retrying blindly.
		if errors.Is(err, ErrAuthRequired) {
			return fmt.Sprintf("[ERROR] %v", err), nil, nil
		}
		return "", nil, fmt.Errorf("failed to fetch log for %s: %w", args.EventID, err)
	}

	content := detail.Content
	if t.truncator != nil && t.maxTokens > 0 {
		content = t.truncator.Truncate(content, t.maxTokens)
	}

	metadata := map[string]interface{}{
		"event_id":   detail.EventID,
		"platform":   detail.Platform,
		"from_cache": detail.FromCache,
		"bytes":      len(detail.Content),
		"truncated":  len(content) < len(detail.Content),
	}

	return content, metadata, nil
}

// IsLoopBreaking returns false; fetching is an intermediate step
func (t *FetchTool) IsLoopBreaking() bool {
	return false
}
