// Package tokenizer provides token counting for LLM payloads.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/logsleuth/logsleuth/pkg/types"
)

// DefaultEncoding is used when a model has no registered encoding.
const DefaultEncoding = "cl100k_base"

// perMessageOverhead approximates the tokens the chat format adds around
// each message (role markers and separators).
const perMessageOverhead = 4

// Tokenizer counts tokens using a tiktoken encoding.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// NewForModel creates a tokenizer for the given model, falling back to the
// default encoding when the model is unknown to tiktoken.
func NewForModel(model string) (*Tokenizer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(DefaultEncoding)
		if err != nil {
			return nil, fmt.Errorf("failed to load encoding: %w", err)
		}
	}
	return &Tokenizer{encoding: enc}, nil
}

// CountTokens returns the token count of a single string.
func (t *Tokenizer) CountTokens(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// CountMessagesTokens returns the approximate token count of a message list,
// including per-message chat format overhead.
func (t *Tokenizer) CountMessagesTokens(messages []*types.Message) int {
	total := 0
	for _, msg := range messages {
		total += t.CountTokens(msg.Content) + perMessageOverhead
	}
	return total
}

// Truncate cuts text so it encodes to at most maxTokens tokens. When the
// text is cut, a truncation marker is appended on its own line.
func (t *Tokenizer) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}

	tokens := t.encoding.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}

	truncated := t.encoding.Decode(tokens[:maxTokens])
	return strings.TrimRight(truncated, "\n") + "\n... [truncated]"
}
