// Package tui provides a full-screen progress view for long-running
// analysis turns: a spinner, the live event feed, and token usage, backed
// by Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/logsleuth/logsleuth/pkg/types"
)

// maxFeedLines bounds the visible event feed.
const maxFeedLines = 14

// maxFeedLineWidth truncates feed lines that would wrap.
const maxFeedLineWidth = 110

// agentEventMsg wraps an agent event for the Bubble Tea update loop.
type agentEventMsg struct {
	event *types.AgentEvent
}

// eventsClosedMsg signals that the agent's event channel was closed.
type eventsClosedMsg struct{}

// model is the Bubble Tea model for the analysis progress view.
type model struct {
	spinner  spinner.Model
	events   <-chan *types.AgentEvent
	inputs   chan<- *types.Input
	eventID  string
	feed     []string
	status   string
	tokens   *types.TokenUsage
	report   *types.AnalysisReport
	err      error
	quitting bool

	headerStyle lipgloss.Style
	feedStyle   lipgloss.Style
	statusStyle lipgloss.Style
	errorStyle  lipgloss.Style
}

func newModel(events <-chan *types.AgentEvent, inputs chan<- *types.Input, eventID string) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return model{
		spinner: sp,
		events:  events,
		inputs:  inputs,
		eventID: eventID,
		status:  "starting analysis",

		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		feedStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		errorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Init starts the spinner and the event listener.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, listenForEvents(m.events))
}

// listenForEvents converts the next agent event into a Bubble Tea message.
func listenForEvents(events <-chan *types.AgentEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return agentEventMsg{event: event}
	}
}

// Update handles incoming messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelTurn()
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case agentEventMsg:
		done := m.applyEvent(msg.event)
		if done {
			m.quitting = true
			return m, tea.Quit
		}
		return m, listenForEvents(m.events)

	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// applyEvent folds an agent event into the view state. Returns true when
// the turn is over.
func (m *model) applyEvent(event *types.AgentEvent) bool {
	switch event.Type {
	case types.EventTypeThinkingStart:
		m.status = "thinking"
	case types.EventTypeToolCall:
		m.status = fmt.Sprintf("running %s", event.ToolName)
		m.pushFeed(fmt.Sprintf("→ %s", event.ToolName))
	case types.EventTypeToolResult:
		m.pushFeed(fmt.Sprintf("✓ %s", event.ToolName))
	case types.EventTypeToolResultError:
		m.pushFeed(fmt.Sprintf("✗ %s: %v", event.ToolName, event.Error))
	case types.EventTypeAPICallStart:
		m.status = "waiting for model"
	case types.EventTypeTokenUsage:
		m.tokens = event.TokenUsage
	case types.EventTypeReport:
		m.report = event.Report
		m.status = "report ready"
	case types.EventTypeError:
		m.err = event.Error
		m.pushFeed(fmt.Sprintf("! %v", event.Error))
	case types.EventTypeTurnEnd:
		return true
	}
	return false
}

// cancelTurn asks the agent to abort the in-flight stream. Non-blocking:
// if the input channel is full the turn is about to end anyway.
func (m *model) cancelTurn() {
	if m.inputs == nil {
		return
	}
	select {
	case m.inputs <- types.NewCancelInput():
	default:
	}
}

// pushFeed appends a line to the feed, dropping the oldest past the cap.
// Truncation counts runes so multibyte log text is never split mid-rune.
func (m *model) pushFeed(line string) {
	line = strings.Join(strings.Fields(line), " ")
	if runes := []rune(line); len(runes) > maxFeedLineWidth {
		line = string(runes[:maxFeedLineWidth]) + "…"
	}
	m.feed = append(m.feed, line)
	if len(m.feed) > maxFeedLines {
		m.feed = m.feed[len(m.feed)-maxFeedLines:]
	}
}

// View renders the progress screen.
func (m model) View() string {
	if m.quitting {
		// The final report is rendered by the caller after the program exits
		return ""
	}

	var sb strings.Builder

	header := "logsleuth"
	if m.eventID != "" {
		header += " · " + m.eventID
	}
	sb.WriteString(m.headerStyle.Render(header))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.statusStyle.Render(m.status)))

	if m.tokens != nil {
		sb.WriteString(m.feedStyle.Render(fmt.Sprintf("tokens: %d prompt / %d completion", m.tokens.PromptTokens, m.tokens.CompletionTokens)))
		sb.WriteString("\n")
	}

	if len(m.feed) > 0 {
		sb.WriteString("\n")
		for _, line := range m.feed {
			sb.WriteString(m.feedStyle.Render(line))
			sb.WriteString("\n")
		}
	}

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(m.errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.feedStyle.Render("press q to cancel"))
	sb.WriteString("\n")

	return sb.String()
}
