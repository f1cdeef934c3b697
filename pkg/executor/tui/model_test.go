package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsleuth/logsleuth/pkg/types"
)

func TestQuitKeySendsCancel(t *testing.T) {
	events := make(chan *types.AgentEvent)
	inputs := make(chan *types.Input, 1)

	m := newModel(events, inputs, "DJC-CF-123")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd, "quit key should produce a command")

	select {
	case input := <-inputs:
		assert.True(t, input.IsCancel())
	default:
		t.Fatal("quit key should send a cancel input to the agent")
	}
}

func TestCancelTurnWithoutInputChannel(t *testing.T) {
	m := newModel(make(chan *types.AgentEvent), nil, "")
	m.cancelTurn() // must not panic
}

func TestPushFeedTruncatesOnRunes(t *testing.T) {
	m := newModel(make(chan *types.AgentEvent), nil, "")

	line := strings.Repeat("支付失败", 100)
	m.pushFeed(line)

	require.Len(t, m.feed, 1)
	got := m.feed[0]
	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.Equal(t, maxFeedLineWidth+1, utf8.RuneCountInString(got)) // cap plus ellipsis
}

func TestApplyEventEndsTurn(t *testing.T) {
	m := newModel(make(chan *types.AgentEvent), nil, "DJC-CF-123")

	assert.False(t, m.applyEvent(types.NewToolCallEvent("fetch_error_log", nil)))
	assert.True(t, m.applyEvent(types.NewTurnEndEvent()))
}
