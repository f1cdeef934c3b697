package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/logsleuth/logsleuth/pkg/types"
)

// jsonFenceRegex matches a fenced ```json block in model output.
var jsonFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// runAgentLoop executes the agent loop with tools and thinking.
// The loop continues until the report is submitted, the circuit breaker
// triggers, or the iteration budget runs out.
func (a *DefaultAgent) runAgentLoop(ctx context.Context) {
	var errorContext string

	for iteration := 0; iteration < a.maxIterations; iteration++ {
		// Check if context was canceled (user stopped the analysis)
		select {
		case <-ctx.Done():
			a.memory.Add(types.NewUserMessage("Analysis stopped by user."))
			return
		default:
			// Continue with iteration
		}

		// Execute one iteration with optional error context from previous iteration
		shouldContinue, nextErrorContext := a.executeIteration(ctx, errorContext)
		if !shouldContinue {
			// Report submitted or circuit breaker triggered
			return
		}

		// Update error context for next iteration
		errorContext = nextErrorContext
	}

	// Iteration budget exhausted without a submitted report: salvage what
	// we can from the final model output.
	agentDebugLog.Printf("Agent loop exhausted %d iterations without a report", a.maxIterations)
	a.emitFallbackReport()
}

// executeIteration performs a single iteration of the agent loop
// Returns (shouldContinue, errorContext) where:
//   - shouldContinue: false means loop should break (report submitted or circuit breaker)
//   - errorContext: message to inject as user context for error recovery (empty if no error)
func (a *DefaultAgent) executeIteration(ctx context.Context, errorContext string) (bool, string) {
	// Step 1: Prepare the prompt
	pctx := a.preparePrompt(errorContext)

	// Step 2: Call LLM and get streaming response
	resp, err := a.callLLM(ctx, pctx)
	if err != nil {
		// Context cancellation - stop silently
		if ctx.Err() != nil {
			return false, ""
		}
		// LLM error already emitted in callLLM
		return false, ""
	}

	// Step 3: Record response (emit tokens, add to memory)
	a.recordResponse(pctx, resp)

	// Step 4: Process the tool call (parse, validate, execute)
	return a.processToolCall(ctx, resp.toolCallContent)
}

// emitFallbackReport produces a degraded report when the loop ended without
// the model submitting one. If the final output contains a parseable report
// JSON it is used; otherwise a parse-error report wraps a summary of the
// output.
func (a *DefaultAgent) emitFallbackReport() {
	if report := parseReportFromText(a.lastAssistantContent); report != nil {
		if report.EventID == "" {
			report.EventID = a.currentEventID
		}
		a.emitEvent(types.NewReportEvent(report))
		return
	}

	summary := strings.TrimSpace(a.lastAssistantContent)
	a.emitEvent(types.NewReportEvent(types.FallbackReport(a.currentEventID, summary)))
}

// parseReportFromText tries to recover an analysis report from free-form
// model output. It looks for a fenced JSON block first, then for a bare
// JSON object. Returns nil if nothing parseable is found.
func parseReportFromText(text string) *types.AnalysisReport {
	candidate := ""
	if m := jsonFenceRegex.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start >= 0 && end > start {
			candidate = text[start : end+1]
		}
	}
	if candidate == "" {
		return nil
	}

	var report types.AnalysisReport
	if err := json.Unmarshal([]byte(candidate), &report); err != nil {
		return nil
	}
	if report.ErrorSummary == "" || !report.RiskLevel.Valid() {
		return nil
	}
	return &report
}

// emitEvent sends an event on the event channel.
// This is a blocking send to ensure critical events like TurnEnd are not dropped.
// It safely handles the case where the event channel may be closed during shutdown.
func (a *DefaultAgent) emitEvent(event *types.AgentEvent) {
	defer func() {
		if r := recover(); r != nil {
			// Event channel was closed during shutdown - this is expected
			agentDebugLog.Printf("Dropped event %s after channel close", event.Type)
		}
	}()
	a.channels.Event <- event
}

// trackError records an error message in the ring buffer and reports
// whether the circuit breaker should trip (5 consecutive errors without a
// successful tool execution in between).
func (a *DefaultAgent) trackError(errMsg string) bool {
	a.lastErrors[a.errorIndex] = errMsg
	a.errorIndex = (a.errorIndex + 1) % len(a.lastErrors)

	for _, e := range a.lastErrors {
		if e == "" {
			return false
		}
	}
	return true
}

// resetErrorTracking clears the consecutive-error ring buffer after a
// successful tool execution.
func (a *DefaultAgent) resetErrorTracking() {
	a.lastErrors = [5]string{}
	a.errorIndex = 0
}

// circuitBreakerError builds the terminal error emitted when the breaker trips.
func circuitBreakerError(kind string) error {
	return fmt.Errorf("circuit breaker triggered: 5 consecutive %s errors", kind)
}
