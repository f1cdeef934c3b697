package agent

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/logsleuth/logsleuth/pkg/agent/prompts"
	"github.com/logsleuth/logsleuth/pkg/agent/tools"
	"github.com/logsleuth/logsleuth/pkg/types"
)

// processToolCall parses the tool call content from the response and
// dispatches it. Returns (shouldContinue, errorContext) following the same
// pattern as executeIteration.
func (a *DefaultAgent) processToolCall(ctx context.Context, toolCallContent string) (bool, string) {
	// No tool call at all: nudge the model back into the loop protocol
	if strings.TrimSpace(toolCallContent) == "" {
		a.emitEvent(types.NewNoToolCallEvent())
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type: prompts.ErrorTypeNoToolCall,
		})

		if a.trackError(errMsg) {
			a.emitEvent(types.NewErrorEvent(circuitBreakerError("missing tool call")))
			a.emitFallbackReport()
			return false, ""
		}

		return true, errMsg
	}

	// Re-wrap the inner XML; the stream processor stripped the outer tags
	toolCall, _, err := tools.ParseToolCall("<tool>" + toolCallContent + "</tool>")
	if err != nil {
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type:  prompts.ErrorTypeParseFailure,
			Error: err,
		})

		if a.trackError(errMsg) {
			a.emitEvent(types.NewErrorEvent(circuitBreakerError("tool call parse")))
			a.emitFallbackReport()
			return false, ""
		}

		a.emitEvent(types.NewErrorEvent(fmt.Errorf("failed to parse tool call: %w", err)))
		return true, errMsg
	}

	return a.executeTool(ctx, *toolCall)
}

// executeToolCall emits events, executes the tool, and handles execution errors
// Returns (result, metadata, shouldContinue, errorContext)
func (a *DefaultAgent) executeToolCall(ctx context.Context, tool tools.Tool, toolCall tools.ToolCall) (string, map[string]interface{}, bool, string) {
	// Emit tool call event - parse arguments to map for event emission
	argsMap, err := tools.XMLToMap(toolCall.GetArgumentsXML())
	if err != nil {
		// If parsing fails, emit empty map - the actual tool execution will handle the raw XML
		argsMap = make(map[string]interface{})
	}
	a.emitEvent(types.NewToolCallEvent(toolCall.ToolName, argsMap))

	// Execute the tool
	result, metadata, toolErr := tool.Execute(ctx, toolCall.GetArgumentsXML())

	if toolErr != nil {
		a.emitEvent(types.NewToolResultErrorEvent(toolCall.ToolName, toolErr))
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type:     prompts.ErrorTypeToolExecution,
			ToolName: toolCall.ToolName,
			Error:    toolErr,
		})

		// Track error and check circuit breaker
		if a.trackError(errMsg) {
			a.emitEvent(types.NewErrorEvent(circuitBreakerError("tool execution")))
			a.emitFallbackReport()
			return "", nil, false, ""
		}

		a.emitEvent(types.NewErrorEvent(fmt.Errorf("tool execution failed: %w", toolErr)))
		return "", nil, true, errMsg
	}

	return result, metadata, true, ""
}

// processToolResult handles successful tool execution results
// Returns (shouldContinue, errorContext)
func (a *DefaultAgent) processToolResult(tool tools.Tool, toolCall tools.ToolCall, result string, metadata map[string]interface{}) (bool, string) {
	event := types.NewToolResultEvent(toolCall.ToolName, result)
	// Add metadata to the event if present
	if len(metadata) > 0 {
		maps.Copy(event.Metadata, metadata)
	}
	a.emitEvent(event)

	// Success! Reset error tracking
	a.resetErrorTracking()

	// Check if this is a loop-breaking tool
	if tool.IsLoopBreaking() {
		// The submitted report rides on the result metadata
		if report, ok := metadata[tools.MetadataKeyReport].(*types.AnalysisReport); ok {
			a.emitEvent(types.NewReportEvent(report))
		}
		return false, ""
	}

	// For non-breaking tools, add result to memory and continue loop
	a.memory.Add(prompts.ToolResultMessage(prompts.ToolResult{
		ToolName: toolCall.ToolName,
		Result:   result,
	}))
	return true, ""
}

// lookupTool retrieves a tool by name and handles lookup errors
// Returns (tool, shouldContinue, errorContext)
func (a *DefaultAgent) lookupTool(toolName string) (tools.Tool, bool, string) {
	tool, exists := a.getTool(toolName)
	if !exists {
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type:           prompts.ErrorTypeUnknownTool,
			ToolName:       toolName,
			AvailableTools: a.getToolsList(),
		})

		// Track error and check circuit breaker
		if a.trackError(errMsg) {
			a.emitEvent(types.NewErrorEvent(circuitBreakerError("unknown tool")))
			a.emitFallbackReport()
			return nil, false, ""
		}

		a.emitEvent(types.NewErrorEvent(fmt.Errorf("unknown tool: %s", toolName)))
		return nil, true, errMsg
	}

	return tool, true, ""
}

// executeTool handles tool lookup, execution, and result processing
// Returns (shouldContinue, errorContext) following the same pattern as executeIteration
func (a *DefaultAgent) executeTool(ctx context.Context, toolCall tools.ToolCall) (bool, string) {
	// Look up the tool
	tool, shouldContinue, errCtx := a.lookupTool(toolCall.ToolName)
	if !shouldContinue || errCtx != "" {
		return shouldContinue, errCtx
	}

	// Execute the tool call
	result, metadata, shouldContinue, errCtx := a.executeToolCall(ctx, tool, toolCall)
	if !shouldContinue || errCtx != "" {
		return shouldContinue, errCtx
	}

	// Process the successful result
	return a.processToolResult(tool, toolCall, result, metadata)
}
