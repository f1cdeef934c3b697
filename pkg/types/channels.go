package types

import "sync"

// AgentChannels bundles the channels an executor uses to talk to an agent.
type AgentChannels struct {
	// Input carries user inputs to the agent.
	Input chan *Input

	// Event carries agent events back to the executor.
	Event chan *AgentEvent

	// Shutdown signals the agent to stop; close it to request shutdown.
	Shutdown chan struct{}

	// Done is closed by the agent once its event loop has exited.
	Done chan struct{}

	closeOnce sync.Once
}

// NewAgentChannels creates a channel set with the given buffer size for
// the input and event channels.
func NewAgentChannels(bufferSize int) *AgentChannels {
	return &AgentChannels{
		Input:    make(chan *Input, bufferSize),
		Event:    make(chan *AgentEvent, bufferSize),
		Shutdown: make(chan struct{}),
		Done:     make(chan struct{}),
	}
}

// Close closes the outbound channels exactly once. The agent calls this
// when its event loop exits.
func (c *AgentChannels) Close() {
	c.closeOnce.Do(func() {
		close(c.Event)
		close(c.Done)
	})
}
