// Package core contains internal stream processing utilities shared by
// agent implementations.
package core

import (
	"regexp"
	"strings"

	"github.com/logsleuth/logsleuth/pkg/llm"
	"github.com/logsleuth/logsleuth/pkg/types"
)

// toolCallRegex matches the first complete tool call element in a response.
var toolCallRegex = regexp.MustCompile(`(?s)<tool>(.*?)</tool>`)

// ProcessStream consumes a completion stream, emitting agent events as
// content arrives, and invokes done with the collected response once the
// stream is closed.
//
// Thinking content is emitted live as thinking events. Message content is
// buffered until the stream ends because a tool call can only be recognized
// once its closing tag has arrived. After the stream closes the buffered
// content is split into message text and tool call XML, and the matching
// message/tool_call events are emitted.
//
// done receives:
//   - content: message text outside any tool call
//   - thinking: accumulated thinking content
//   - toolCall: the inner XML of the tool call (without <tool> tags), or ""
//   - role: the role reported by the stream (usually "assistant")
func ProcessStream(
	stream <-chan *llm.StreamChunk,
	emit func(*types.AgentEvent),
	done func(content, thinking, toolCall, role string),
) {
	var (
		role            string
		thinkingBuf     strings.Builder
		messageBuf      strings.Builder
		thinkingStarted bool
	)

	for chunk := range stream {
		if chunk.IsError() {
			emit(types.NewErrorEvent(chunk.Error))
			continue
		}

		if chunk.Role != "" {
			role = chunk.Role
		}

		if chunk.Content == "" {
			continue
		}

		switch chunk.Type {
		case llm.ContentTypeThinking:
			if !thinkingStarted {
				emit(types.NewThinkingStartEvent())
				thinkingStarted = true
			}
			thinkingBuf.WriteString(chunk.Content)
			emit(types.NewThinkingContentEvent(chunk.Content))
		default:
			messageBuf.WriteString(chunk.Content)
		}
	}

	if thinkingStarted {
		emit(types.NewThinkingEndEvent())
	}

	content, toolCall := splitToolCall(messageBuf.String())

	if content != "" {
		emit(types.NewMessageStartEvent())
		emit(types.NewMessageContentEvent(content))
		emit(types.NewMessageEndEvent())
	}

	if toolCall != "" {
		emit(types.NewToolCallStartEvent())
		emit(types.NewToolCallContentEvent(toolCall))
		emit(types.NewToolCallEndEvent())
	}

	done(content, thinkingBuf.String(), toolCall, role)
}

// splitToolCall separates the message text from the first tool call in the
// response. The returned toolCall is the inner XML without the surrounding
// <tool> tags; message is everything outside the tool call.
func splitToolCall(text string) (message, toolCall string) {
	loc := toolCallRegex.FindStringSubmatchIndex(text)
	if loc == nil {
		return strings.TrimSpace(text), ""
	}

	toolCall = text[loc[2]:loc[3]]
	message = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	return message, toolCall
}
