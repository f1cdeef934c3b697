package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/logsleuth/logsleuth/pkg/agent/memory"
	"github.com/logsleuth/logsleuth/pkg/agent/prompts"
	"github.com/logsleuth/logsleuth/pkg/agent/tools"
	"github.com/logsleuth/logsleuth/pkg/llm"
	"github.com/logsleuth/logsleuth/pkg/llm/tokenizer"
	"github.com/logsleuth/logsleuth/pkg/logging"
	"github.com/logsleuth/logsleuth/pkg/types"
)

// DefaultMaxIterations bounds the agent loop. Analysis of a single event
// should converge well before this; hitting the bound produces a fallback
// report instead of spinning.
const DefaultMaxIterations = 10

// InputMetadataEventID is the input metadata key carrying the event serial
// number being analyzed. It is used for fallback reports when the model
// never submits one.
const InputMetadataEventID = "event_id"

var agentDebugLog *logging.Logger

func init() {
	var err error
	agentDebugLog, err = logging.NewLogger("agent")
	if err != nil {
		// Logger fell back to stderr due to initialization failure
		agentDebugLog.Warnf("Failed to initialize agent logger, using stderr fallback: %v", err)
	}
}

// DefaultAgent is the standard implementation of the Agent interface.
// It processes analysis requests through an LLM provider using an agent
// loop with tools, thinking, and conversation memory.
type DefaultAgent struct {
	provider           llm.Provider
	channels           *types.AgentChannels
	customInstructions string
	maxIterations      int
	bufferSize         int

	// Agent loop components
	tools   map[string]tools.Tool
	toolsMu sync.RWMutex
	memory  memory.Memory

	// Control channels
	cancelMu     sync.Mutex
	cancelStream context.CancelFunc

	// Running state
	running bool
	runMu   sync.Mutex

	// Error recovery state
	lastErrors [5]string // Ring buffer of last 5 error messages
	errorIndex int       // Current position in ring buffer

	// Fallback report state for the current turn
	currentEventID       string
	lastAssistantContent string

	// Token usage tracking
	tokenizer *tokenizer.Tokenizer
}

// AgentOption is a function that configures an agent
type AgentOption func(*DefaultAgent)

// WithCustomInstructions sets custom instructions for the agent
// These are user-provided instructions that will be added to the system prompt
func WithCustomInstructions(instructions string) AgentOption {
	return func(a *DefaultAgent) {
		a.customInstructions = instructions
	}
}

// WithMaxIterations sets the maximum number of agent loop iterations per turn
func WithMaxIterations(max int) AgentOption {
	return func(a *DefaultAgent) {
		if max > 0 {
			a.maxIterations = max
		}
	}
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) AgentOption {
	return func(a *DefaultAgent) {
		a.bufferSize = size
	}
}

// WithMemory sets a custom memory implementation for the agent
func WithMemory(mem memory.Memory) AgentOption {
	return func(a *DefaultAgent) {
		if mem != nil {
			a.memory = mem
		}
	}
}

// NewDefaultAgent creates a new DefaultAgent with the given provider and options.
func NewDefaultAgent(provider llm.Provider, opts ...AgentOption) *DefaultAgent {
	// Create tokenizer for client-side token counting
	tok, err := tokenizer.NewForModel(provider.GetModel())
	if err != nil {
		// Fall back to nil tokenizer if initialization fails
		tok = nil
	}

	a := &DefaultAgent{
		provider:      provider,
		bufferSize:    10, // default buffer size
		maxIterations: DefaultMaxIterations,
		tools:         make(map[string]tools.Tool),
		memory:        memory.NewConversationMemory(),
		tokenizer:     tok,
	}

	// Register built-in tools
	a.RegisterDefaultTools()

	// Apply options
	for _, opt := range opts {
		opt(a)
	}

	// Create channels with configured buffer size
	a.channels = types.NewAgentChannels(a.bufferSize)

	return a
}

// RegisterDefaultTools registers the built-in loop-control tools.
func (a *DefaultAgent) RegisterDefaultTools() {
	a.tools["submit_report"] = tools.NewSubmitReportTool()
}

// Start begins the agent's event loop in a goroutine.
func (a *DefaultAgent) Start(ctx context.Context) error {
	a.runMu.Lock()
	if a.running {
		a.runMu.Unlock()
		return fmt.Errorf("agent is already running")
	}
	a.running = true
	a.runMu.Unlock()

	// Start event loop
	go a.eventLoop(ctx)

	return nil
}

// Shutdown gracefully stops the agent.
func (a *DefaultAgent) Shutdown(ctx context.Context) error {
	// Signal shutdown
	close(a.channels.Shutdown)

	// Wait for completion or context cancellation
	select {
	case <-a.channels.Done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetChannels returns the communication channels for this agent.
func (a *DefaultAgent) GetChannels() *types.AgentChannels {
	return a.channels
}

// eventLoop is the main processing loop for the agent.
func (a *DefaultAgent) eventLoop(ctx context.Context) {
	defer a.channels.Close()
	defer func() {
		a.runMu.Lock()
		a.running = false
		a.runMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			// Context canceled
			a.emitEvent(types.NewErrorEvent(ctx.Err()))
			return

		case <-a.channels.Shutdown:
			// Shutdown requested
			return

		case input := <-a.channels.Input:
			if input == nil {
				// Channel closed
				return
			}

			// Handle cancellation immediately (synchronously) so it can
			// interrupt ongoing processing
			if input.IsCancel() {
				a.processInput(ctx, input)
				continue
			}

			// Process other inputs asynchronously so eventLoop can continue
			// handling cancel requests
			go a.processInput(ctx, input)
		}
	}
}

// processInput handles a single input from the user.
func (a *DefaultAgent) processInput(ctx context.Context, input *types.Input) {
	// Handle cancellation
	if input.IsCancel() {
		a.cancelMu.Lock()
		if a.cancelStream != nil {
			a.cancelStream()
			a.cancelStream = nil
		}
		a.cancelMu.Unlock()
		return
	}

	// Handle user input
	if input.IsUserInput() {
		eventID, _ := input.Metadata[InputMetadataEventID].(string)
		a.processUserInput(ctx, input.Content, eventID)
		return
	}
}

// processUserInput processes a user text input using the agent loop.
func (a *DefaultAgent) processUserInput(ctx context.Context, content, eventID string) {
	// Track the event being analyzed for fallback reporting
	a.currentEventID = eventID
	a.lastAssistantContent = ""

	// Add user message to memory
	userMsg := types.NewUserMessage(content)
	a.memory.Add(userMsg)

	// Create cancellable context for this turn
	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.cancelMu.Lock()
	a.cancelStream = cancel
	a.cancelMu.Unlock()

	defer func() {
		a.cancelMu.Lock()
		a.cancelStream = nil
		a.cancelMu.Unlock()
	}()

	// Emit busy status
	a.emitEvent(types.NewUpdateBusyEvent(true))
	defer a.emitEvent(types.NewUpdateBusyEvent(false))

	// Run agent loop (now in assistant.go)
	a.runAgentLoop(turnCtx)

	// Emit turn end
	a.emitEvent(types.NewTurnEndEvent())
}

// RegisterTool adds a tool to the agent's tool registry.
// The built-in submit_report tool is always available and cannot be
// overridden.
func (a *DefaultAgent) RegisterTool(tool tools.Tool) error {
	if tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}

	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	// Prevent overriding built-in tools
	if name == "submit_report" {
		return fmt.Errorf("cannot override built-in tool: %s", name)
	}

	a.toolsMu.Lock()
	defer a.toolsMu.Unlock()

	a.tools[name] = tool
	return nil
}

// GetTool retrieves a specific tool by name from the agent's tool registry.
// Returns nil if the tool is not found.
func (a *DefaultAgent) GetTool(name string) interface{} {
	a.toolsMu.RLock()
	defer a.toolsMu.RUnlock()

	return a.tools[name]
}

// GetTools returns a list of all available tools.
// This is used internally for prompt building and memory
func (a *DefaultAgent) GetTools() []interface{} {
	a.toolsMu.RLock()
	defer a.toolsMu.RUnlock()

	toolsList := make([]interface{}, 0, len(a.tools))
	for _, tool := range a.tools {
		toolsList = append(toolsList, tool)
	}
	return toolsList
}

// GetContextInfo returns context statistics for debugging and display.
func (a *DefaultAgent) GetContextInfo() *ContextInfo {
	a.toolsMu.RLock()
	defer a.toolsMu.RUnlock()

	// Build system prompt without tools to calculate base system tokens
	baseSystemPrompt := prompts.NewPromptBuilder().
		WithCustomInstructions(a.customInstructions).
		Build()

	// Build just the tools section to calculate tool tokens
	toolsSection := ""
	if len(a.tools) > 0 {
		toolsSection = "<available_tools>\n" +
			prompts.FormatToolSchemas(a.getToolsList()) +
			"</available_tools>\n\n"
	}

	systemPromptTokens := 0
	toolTokens := 0
	if a.tokenizer != nil {
		systemPromptTokens = a.tokenizer.CountTokens(baseSystemPrompt)
		toolTokens = a.tokenizer.CountTokens(toolsSection)
	}

	// Build full system prompt for current context calculation
	fullSystemPrompt := prompts.NewPromptBuilder().
		WithTools(a.getToolsList()).
		WithCustomInstructions(a.customInstructions).
		Build()

	// Get tool names
	toolNames := make([]string, 0, len(a.tools))
	for name := range a.tools {
		toolNames = append(toolNames, name)
	}

	// Get message history stats
	messages := a.memory.GetAll()
	messageCount := len(messages)

	// Count conversation turns (user messages)
	conversationTurns := 0
	for _, msg := range messages {
		if msg.Role == types.RoleUser {
			conversationTurns++
		}
	}

	// Calculate token counts
	conversationTokens := 0
	currentTokens := 0
	if a.tokenizer != nil {
		conversationTokens = a.tokenizer.CountMessagesTokens(messages)
		currentTokens = conversationTokens + a.tokenizer.CountTokens(fullSystemPrompt)
	} else {
		// Fallback: rough estimate of 1 token per 4 characters
		for _, msg := range messages {
			conversationTokens += (len(msg.Content) + len(string(msg.Role)) + 12) / 4
		}
		currentTokens = conversationTokens + len(fullSystemPrompt)/4
	}

	return &ContextInfo{
		SystemPromptTokens:   systemPromptTokens,
		CustomInstructions:   a.customInstructions != "",
		ToolCount:            len(a.tools),
		ToolTokens:           toolTokens,
		ToolNames:            toolNames,
		MessageCount:         messageCount,
		ConversationTurns:    conversationTurns,
		ConversationTokens:   conversationTokens,
		CurrentContextTokens: currentTokens,
	}
}

// GetProvider returns the LLM provider used by this agent
func (a *DefaultAgent) GetProvider() llm.Provider {
	return a.provider
}

// SetProvider updates the LLM provider used by this agent.
// The update takes effect on the next agent iteration.
func (a *DefaultAgent) SetProvider(provider llm.Provider) error {
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}

	a.provider = provider
	return nil
}
