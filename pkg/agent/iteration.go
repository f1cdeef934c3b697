package agent

import (
	"context"
	"fmt"

	"github.com/logsleuth/logsleuth/pkg/agent/core"
	"github.com/logsleuth/logsleuth/pkg/agent/prompts"
	"github.com/logsleuth/logsleuth/pkg/types"
)

// promptContext holds the prepared prompt and related metadata
type promptContext struct {
	systemPrompt string
	messages     []*types.Message
	promptTokens int
}

// llmResponse holds the response from the LLM
type llmResponse struct {
	assistantContent string
	toolCallContent  string
	completionTokens int
}

// preparePrompt builds the prompt and counts tokens
func (a *DefaultAgent) preparePrompt(errorContext string) *promptContext {
	// Build system prompt with tools
	systemPrompt := a.buildSystemPrompt()

	// Get conversation history from memory
	history := a.memory.GetAll()

	// Build messages for LLM with optional error context
	messages := prompts.BuildMessages(systemPrompt, history, "", errorContext)

	// Track prompt tokens before sending to LLM
	var promptTokens int
	if a.tokenizer != nil {
		promptTokens = a.tokenizer.CountMessagesTokens(messages)
		agentDebugLog.Printf("Prompt tokens before send: %d", promptTokens)
	}

	return &promptContext{
		systemPrompt: systemPrompt,
		messages:     messages,
		promptTokens: promptTokens,
	}
}

// callLLM sends the request to the LLM and processes the streaming response
func (a *DefaultAgent) callLLM(ctx context.Context, pctx *promptContext) (*llmResponse, error) {
	// Emit API call start event
	a.emitEvent(types.NewAPICallStartEvent("llm"))

	// Get response from LLM
	stream, err := a.provider.StreamCompletion(ctx, pctx.messages)
	if err != nil {
		// Check if this is a context cancellation (user stopped the agent)
		if ctx.Err() != nil {
			return nil, ctx.Err() // Return context error for clean handling
		}
		// Terminal error - LLM/API failures should stop the loop
		a.emitEvent(types.NewErrorEvent(fmt.Errorf("failed to start completion: %w", err)))
		return nil, err
	}

	// Process stream and collect response
	var assistantContent string
	var toolCallContent string
	core.ProcessStream(stream, a.emitEvent, func(content, thinking, toolCall, role string) {
		assistantContent = content
		toolCallContent = toolCall
	})

	a.emitEvent(types.NewAPICallEndEvent("llm"))

	// Count completion tokens if tokenizer is available
	var completionTokens int
	if a.tokenizer != nil {
		fullResponse := assistantContent
		if toolCallContent != "" {
			fullResponse += toolCallContent
		}
		completionTokens = a.tokenizer.CountTokens(fullResponse)
	}

	return &llmResponse{
		assistantContent: assistantContent,
		toolCallContent:  toolCallContent,
		completionTokens: completionTokens,
	}, nil
}

// recordResponse handles token usage events and adds the response to memory
func (a *DefaultAgent) recordResponse(pctx *promptContext, resp *llmResponse) {
	// Emit token usage event if we have token counts
	if pctx.promptTokens > 0 || resp.completionTokens > 0 {
		totalTokens := pctx.promptTokens + resp.completionTokens
		a.emitEvent(types.NewTokenUsageEvent(pctx.promptTokens, resp.completionTokens, totalTokens))
	}

	// Keep the latest plain content around for fallback report extraction
	if resp.assistantContent != "" {
		a.lastAssistantContent = resp.assistantContent
	}

	// Add assistant's response to memory
	fullResponse := resp.assistantContent
	if resp.toolCallContent != "" {
		fullResponse += "<tool>" + resp.toolCallContent + "</tool>"
	}
	a.memory.Add(&types.Message{
		Role:    types.RoleAssistant,
		Content: fullResponse,
	})
}
