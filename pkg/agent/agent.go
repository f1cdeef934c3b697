// Package agent provides the core agent interface and the DefaultAgent
// implementation driving the log analysis loop.
//
// The DefaultAgent is available directly from this package for simple usage:
//
//	ag := agent.NewDefaultAgent(provider, agent.WithMaxIterations(10))
//
// The package is organized with subpackages for specialized functionality:
//   - core: Internal stream processing utilities
//   - memory: Conversation history storage
//   - prompts: System prompt assembly and error recovery messages
//   - tools: Tool/function calling system
package agent

import (
	"context"

	"github.com/logsleuth/logsleuth/pkg/llm"
	"github.com/logsleuth/logsleuth/pkg/types"
)

// Agent defines the core capabilities of a log analysis agent.
// Agents are async event-driven components that process inputs through
// an LLM provider and communicate via channels.
type Agent interface {
	// Start begins the agent's event loop in a goroutine.
	// The agent listens for inputs on its input channel and processes them
	// asynchronously, sending events to the event channel.
	//
	// The agent runs until:
	// - The context is canceled
	// - The shutdown channel is closed
	// - An unrecoverable error occurs
	//
	// Returns an error if the agent fails to start, otherwise returns nil
	// and continues running asynchronously.
	Start(ctx context.Context) error

	// Shutdown gracefully stops the agent.
	// Returns when the agent has fully stopped or the context is canceled.
	Shutdown(ctx context.Context) error

	// GetChannels returns the communication channels for this agent.
	// The executor uses these channels to send input and receive events.
	GetChannels() *types.AgentChannels

	// GetTool retrieves a specific tool by name from the agent's tool registry.
	// Returns nil if the tool is not found.
	GetTool(name string) interface{}

	// GetTools returns a list of all available tools registered with the agent.
	GetTools() []interface{}

	// GetContextInfo returns context statistics for debugging and display.
	GetContextInfo() *ContextInfo

	// SetProvider updates the LLM provider used by the agent.
	// The update takes effect on the next agent iteration.
	SetProvider(provider llm.Provider) error
}

// ContextInfo contains agent context statistics.
type ContextInfo struct {
	// System prompt
	SystemPromptTokens int
	CustomInstructions bool

	// Tool system
	ToolCount  int
	ToolTokens int
	ToolNames  []string

	// Message history
	MessageCount       int
	ConversationTurns  int
	ConversationTokens int

	// Token usage for the current context
	CurrentContextTokens int
}
