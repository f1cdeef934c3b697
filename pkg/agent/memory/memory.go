// Package memory provides conversation history storage for agents.
package memory

import (
	"sync"

	"github.com/logsleuth/logsleuth/pkg/types"
)

// Memory stores the conversation history for an agent.
type Memory interface {
	// Add appends a message to the history.
	Add(msg *types.Message)

	// GetAll returns a copy of the full history in order.
	GetAll() []*types.Message

	// Clear removes all messages from the history.
	Clear()
}

// ConversationMemory is an in-memory, thread-safe Memory implementation.
type ConversationMemory struct {
	mu       sync.RWMutex
	messages []*types.Message
}

// NewConversationMemory creates an empty conversation memory.
func NewConversationMemory() *ConversationMemory {
	return &ConversationMemory{
		messages: make([]*types.Message, 0),
	}
}

// Add appends a message to the history.
func (m *ConversationMemory) Add(msg *types.Message) {
	if msg == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// GetAll returns a copy of the message history. The slice is a copy so
// callers can iterate without holding the lock; the messages themselves
// are shared.
func (m *ConversationMemory) GetAll() []*types.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*types.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Clear removes all messages.
func (m *ConversationMemory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = m.messages[:0]
}

// Len returns the number of stored messages.
func (m *ConversationMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}
