// Package cli provides a command-line executor for logsleuth agents.
//
// The executor drives one analysis turn end to end: it starts the agent,
// sends the analysis request, renders the event stream to the terminal as
// it arrives, and returns the final report.
//
// Example usage:
//
//	provider, _ := openai.NewProvider(os.Getenv("OPENAI_API_KEY"))
//	ag := agent.NewDefaultAgent(provider)
//	executor := cli.NewExecutor(ag, cli.WithShowThinking(true))
//	report, err := executor.RunOnce(ctx, "流水号是 DJC-CF-1211212348-8RJKIC-529-425718", "DJC-CF-1211212348-8RJKIC-529-425718")
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"

	"github.com/logsleuth/logsleuth/pkg/agent"
	"github.com/logsleuth/logsleuth/pkg/types"
)

// Executor renders one agent analysis turn to the terminal.
type Executor struct {
	agent  agent.Agent
	writer io.Writer
	styles *styles

	// Display options
	showThinking    bool
	plain           bool
	jsonOutput      bool
	copyToClipboard bool

	// State tracking
	messageStartPrinted bool
	report              *types.AnalysisReport
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithShowThinking enables/disables displaying the agent's thinking process.
func WithShowThinking(show bool) ExecutorOption {
	return func(e *Executor) {
		e.showThinking = show
	}
}

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithPlain disables all styling and markdown rendering.
func WithPlain(plain bool) ExecutorOption {
	return func(e *Executor) {
		e.plain = plain
	}
}

// WithJSONOutput renders the final report as highlighted JSON instead of markdown.
func WithJSONOutput(jsonOutput bool) ExecutorOption {
	return func(e *Executor) {
		e.jsonOutput = jsonOutput
	}
}

// WithClipboardCopy copies the final report JSON to the system clipboard.
func WithClipboardCopy(copy bool) ExecutorOption {
	return func(e *Executor) {
		e.copyToClipboard = copy
	}
}

// NewExecutor creates a new CLI executor for the given agent.
func NewExecutor(ag agent.Agent, opts ...ExecutorOption) *Executor {
	e := &Executor{
		agent:        ag,
		writer:       os.Stdout,
		showThinking: true, // Show thinking by default
	}

	for _, opt := range opts {
		opt(e)
	}

	e.styles = newStyles(e.plain)

	return e
}

// RunOnce runs a single analysis turn: it starts the agent, sends the query,
// renders events until the turn completes, and shuts the agent down.
// eventID is attached as input metadata so the agent can fall back to it
// when synthesizing a degraded report.
func (e *Executor) RunOnce(ctx context.Context, query, eventID string) (*types.AnalysisReport, error) {
	if err := e.agent.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start agent: %w", err)
	}
	defer e.shutdown(ctx)

	channels := e.agent.GetChannels()

	input := types.NewUserInput(query)
	if eventID != "" {
		input.WithMetadata(agent.InputMetadataEventID, eventID)
	}

	select {
	case channels.Input <- input:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Render events until the turn ends or the channel closes
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case event, ok := <-channels.Event:
			if !ok {
				return e.finish()
			}
			if done := e.handleEvent(event); done {
				return e.finish()
			}
		}
	}
}

// finish renders the final report and applies the clipboard option.
func (e *Executor) finish() (*types.AnalysisReport, error) {
	if e.report == nil {
		return nil, fmt.Errorf("analysis ended without a report")
	}

	rendered, err := e.renderReport(e.report)
	if err != nil {
		return e.report, err
	}
	fmt.Fprintln(e.writer, rendered)

	if e.copyToClipboard {
		payload, err := e.report.JSON()
		if err == nil {
			if err := clipboard.WriteAll(payload); err != nil {
				fmt.Fprintln(e.writer, e.styles.errorText(fmt.Sprintf("clipboard copy failed: %v", err)))
			} else {
				fmt.Fprintln(e.writer, e.styles.dimText("Report JSON copied to clipboard."))
			}
		}
	}

	return e.report, nil
}

// handleEvent renders a single event. Returns true once the turn is over.
func (e *Executor) handleEvent(event *types.AgentEvent) bool {
	switch event.Type {
	case types.EventTypeThinkingStart:
		e.handleThinkingStart()
	case types.EventTypeThinkingContent:
		e.handleThinkingContent(event.Content)
	case types.EventTypeThinkingEnd:
		e.handleThinkingEnd()
	case types.EventTypeToolCallStart, types.EventTypeToolCallContent, types.EventTypeToolCallEnd:
		// Tool call XML events are captured but not displayed
	case types.EventTypeToolCall:
		e.handleToolCall(event.ToolName, event.ToolInput)
	case types.EventTypeToolResult:
		e.handleToolResult(event.ToolName, event.ToolOutput)
	case types.EventTypeToolResultError:
		e.handleToolResultError(event.ToolName, event.Error)
	case types.EventTypeMessageStart:
		e.messageStartPrinted = false
	case types.EventTypeMessageContent:
		e.handleMessageContent(event.Content)
	case types.EventTypeMessageEnd:
		fmt.Fprintln(e.writer)
	case types.EventTypeReport:
		e.report = event.Report
	case types.EventTypeError:
		e.handleError(event.Error)
	case types.EventTypeUpdateBusy:
		// The plain CLI renderer has no spinner
	case types.EventTypeTurnEnd:
		return true
	}
	return false
}

func (e *Executor) handleThinkingStart() {
	if e.showThinking {
		fmt.Fprintln(e.writer, e.styles.thinkingHeader("[thinking]"))
	}
}

func (e *Executor) handleThinkingContent(content string) {
	if e.showThinking {
		fmt.Fprint(e.writer, e.styles.dimText(content))
	}
}

func (e *Executor) handleThinkingEnd() {
	if e.showThinking {
		fmt.Fprintln(e.writer)
	}
}

func (e *Executor) handleToolCall(toolName string, input map[string]interface{}) {
	fmt.Fprintf(e.writer, "%s %s\n", e.styles.toolBadge("tool"), e.styles.toolText(formatToolInvocation(toolName, input)))
}

func (e *Executor) handleToolResult(toolName string, output interface{}) {
	result, ok := output.(string)
	if !ok {
		result = fmt.Sprintf("%v", output)
	}
	fmt.Fprintf(e.writer, "%s %s\n", e.styles.okBadge("done"), e.styles.dimText(summarizeResult(toolName, result)))
}

func (e *Executor) handleToolResultError(toolName string, err error) {
	fmt.Fprintf(e.writer, "%s %s\n", e.styles.errBadge("fail"), e.styles.errorText(fmt.Sprintf("%s: %v", toolName, err)))
}

func (e *Executor) handleMessageContent(content string) {
	if content != "" && !e.messageStartPrinted {
		fmt.Fprintln(e.writer)
		e.messageStartPrinted = true
	}
	fmt.Fprint(e.writer, content)
}

func (e *Executor) handleError(err error) {
	fmt.Fprintf(e.writer, "%s %s\n", e.styles.errBadge("error"), e.styles.errorText(err.Error()))
}

// shutdown gracefully shuts down the agent.
func (e *Executor) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := e.agent.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(e.writer, "Warning: shutdown error: %v\n", err)
	}
}
