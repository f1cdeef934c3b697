package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/logsleuth/logsleuth/pkg/agent"
	"github.com/logsleuth/logsleuth/pkg/types"
)

// Executor runs one analysis turn behind a full-screen progress view.
// The final report is returned to the caller for rendering once the view
// has exited.
type Executor struct {
	agent agent.Agent
}

// NewExecutor creates a TUI executor for the given agent.
func NewExecutor(ag agent.Agent) *Executor {
	return &Executor{agent: ag}
}

// RunOnce starts the agent, sends the query, and runs the progress view
// until the turn completes or the user cancels.
func (e *Executor) RunOnce(ctx context.Context, query, eventID string) (*types.AnalysisReport, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := e.agent.Start(runCtx); err != nil {
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
	case <-runCtx.Done():
		return nil, runCtx.Err()
	}

	program := tea.NewProgram(newModel(channels.Event, channels.Input, eventID), tea.WithContext(runCtx))
	finalModel, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view failed: %w", err)
	}

	m, ok := finalModel.(model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", finalModel)
	}

	if m.report == nil {
		if m.err != nil {
			return nil, m.err
		}
		return nil, fmt.Errorf("analysis ended without a report")
	}

	return m.report, nil
}

// shutdown gracefully shuts down the agent, draining any events still
// buffered so the agent's event loop can exit.
func (e *Executor) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range e.agent.GetChannels().Event { //nolint:revive
		}
	}()

	_ = e.agent.Shutdown(shutdownCtx) //nolint:errcheck
	<-done
}
