package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsleuth/logsleuth/pkg/llm"
	"github.com/logsleuth/logsleuth/pkg/types"
)

type streamResult struct {
	content  string
	thinking string
	toolCall string
	role     string
}

func runStream(chunks []*llm.StreamChunk) ([]*types.AgentEvent, streamResult) {
	stream := make(chan *llm.StreamChunk, len(chunks))
	for _, c := range chunks {
		stream <- c
	}
	close(stream)

	var events []*types.AgentEvent
	var result streamResult

	ProcessStream(stream,
		func(e *types.AgentEvent) { events = append(events, e) },
		func(content, thinking, toolCall, role string) {
			result = streamResult{content: content, thinking: thinking, toolCall: toolCall, role: role}
		})

	return events, result
}

func eventTypes(events []*types.AgentEvent) []types.AgentEventType {
	out := make([]types.AgentEventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestProcessStream(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		events, result := runStream([]*llm.StreamChunk{
			{Role: "assistant", Content: "Hello ", Type: llm.ContentTypeMessage},
			{Content: "world", Type: llm.ContentTypeMessage},
		})

		assert.Equal(t, "Hello world", result.content)
		assert.Equal(t, "assistant", result.role)
		assert.Empty(t, result.toolCall)

		assert.Equal(t, []types.AgentEventType{
			types.EventTypeMessageStart,
			types.EventTypeMessageContent,
			types.EventTypeMessageEnd,
		}, eventTypes(events))
	})

	t.Run("thinking streams live, message is buffered", func(t *testing.T) {
		events, result := runStream([]*llm.StreamChunk{
			{Role: "assistant", Content: "hmm, ", Type: llm.ContentTypeThinking},
			{Content: "a coupon error", Type: llm.ContentTypeThinking},
			{Content: "I will fetch the log.", Type: llm.ContentTypeMessage},
		})

		assert.Equal(t, "hmm, a coupon error", result.thinking)
		assert.Equal(t, "I will fetch the log.", result.content)

		assert.Equal(t, []types.AgentEventType{
			types.EventTypeThinkingStart,
			types.EventTypeThinkingContent,
			types.EventTypeThinkingContent,
			types.EventTypeThinkingEnd,
			types.EventTypeMessageStart,
			types.EventTypeMessageContent,
			types.EventTypeMessageEnd,
		}, eventTypes(events))
	})

	t.Run("tool call is split from surrounding prose", func(t *testing.T) {
		response := "Fetching the log now.\n<tool>\n<tool_name>fetch_error_log</tool_name>\n<arguments><event_id>DJC-CF-123</event_id></arguments>\n</tool>"

		events, result := runStream([]*llm.StreamChunk{
			{Role: "assistant", Content: response, Type: llm.ContentTypeMessage},
		})

		assert.Equal(t, "Fetching the log now.", result.content)
		assert.Contains(t, result.toolCall, "<tool_name>fetch_error_log</tool_name>")
		assert.NotContains(t, result.toolCall, "<tool>")

		assert.Equal(t, []types.AgentEventType{
			types.EventTypeMessageStart,
			types.EventTypeMessageContent,
			types.EventTypeMessageEnd,
			types.EventTypeToolCallStart,
			types.EventTypeToolCallContent,
			types.EventTypeToolCallEnd,
		}, eventTypes(events))
	})

	t.Run("tool call only emits no message events", func(t *testing.T) {
		response := "<tool><tool_name>submit_report</tool_name><arguments></arguments></tool>"

		events, result := runStream([]*llm.StreamChunk{
			{Content: response, Type: llm.ContentTypeMessage},
		})

		assert.Empty(t, result.content)
		assert.NotEmpty(t, result.toolCall)

		assert.Equal(t, []types.AgentEventType{
			types.EventTypeToolCallStart,
			types.EventTypeToolCallContent,
			types.EventTypeToolCallEnd,
		}, eventTypes(events))
	})

	t.Run("tool call split across chunks", func(t *testing.T) {
		_, result := runStream([]*llm.StreamChunk{
			{Content: "<tool><tool_name>fetch", Type: llm.ContentTypeMessage},
			{Content: "_error_log</tool_name>", Type: llm.ContentTypeMessage},
			{Content: "<arguments></arguments></tool>", Type: llm.ContentTypeMessage},
		})

		assert.Contains(t, result.toolCall, "<tool_name>fetch_error_log</tool_name>")
	})

	t.Run("stream error becomes an error event", func(t *testing.T) {
		streamErr := errors.New("connection reset")

		events, result := runStream([]*llm.StreamChunk{
			{Content: "partial", Type: llm.ContentTypeMessage},
			{Error: streamErr},
		})

		require.NotEmpty(t, events)
		assert.Equal(t, types.EventTypeError, events[0].Type)
		assert.Equal(t, "partial", result.content)
	})
}

func TestSplitToolCall(t *testing.T) {
	t.Run("no tool call", func(t *testing.T) {
		message, toolCall := splitToolCall("  plain text  ")
		assert.Equal(t, "plain text", message)
		assert.Empty(t, toolCall)
	})

	t.Run("text on both sides", func(t *testing.T) {
		message, toolCall := splitToolCall("before<tool>inner</tool>after")
		assert.Equal(t, "beforeafter", message)
		assert.Equal(t, "inner", toolCall)
	})
}
