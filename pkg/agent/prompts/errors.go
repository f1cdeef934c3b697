package prompts

import (
	"fmt"
	"strings"

	"github.com/logsleuth/logsleuth/pkg/agent/tools"
)

// ErrorType classifies a recoverable agent loop error.
type ErrorType string

const (
	// ErrorTypeToolExecution indicates a tool ran but returned an error.
	ErrorTypeToolExecution ErrorType = "tool_execution"

	// ErrorTypeUnknownTool indicates the agent called a tool that does not exist.
	ErrorTypeUnknownTool ErrorType = "unknown_tool"

	// ErrorTypeParseFailure indicates the tool call XML could not be parsed.
	ErrorTypeParseFailure ErrorType = "parse_failure"

	// ErrorTypeNoToolCall indicates the response contained no tool call at all.
	ErrorTypeNoToolCall ErrorType = "no_tool_call"
)

// ErrorRecoveryContext carries the details needed to build a recovery
// message for a specific failure.
type ErrorRecoveryContext struct {
	Type           ErrorType
	ToolName       string
	Error          error
	AvailableTools []tools.Tool
}

// BuildErrorRecoveryMessage constructs the ephemeral user message injected
// into the next iteration so the agent can correct itself. The message is
// not stored in memory; it only exists for one iteration.
func BuildErrorRecoveryMessage(ctx ErrorRecoveryContext) string {
	switch ctx.Type {
	case ErrorTypeToolExecution:
		return fmt.Sprintf(
			"The tool '%s' failed with the following error:\n\n%v\n\n"+
				"Review the error, adjust your arguments or approach, and try again. "+
				"If the error indicates the data cannot be retrieved at all, submit a report describing the failure instead of retrying.",
			ctx.ToolName, ctx.Error)

	case ErrorTypeUnknownTool:
		return fmt.Sprintf(
			"You called a tool named '%s', but no such tool exists. "+
				"The only available tools are: %s. "+
				"Choose one of these and try again.",
			ctx.ToolName, formatToolNames(ctx.AvailableTools))

	case ErrorTypeParseFailure:
		return fmt.Sprintf(
			"Your tool call could not be parsed as XML:\n\n%v\n\n"+
				"Respond again with a single well-formed tool call. "+
				"Remember to escape special characters (&amp; &lt; &gt;) or wrap free text in CDATA sections.",
			ctx.Error)

	case ErrorTypeNoToolCall:
		return "Your previous response did not contain a tool call. " +
			"Every response must end with exactly one tool call. " +
			"If the analysis is complete, call submit_report; otherwise call the tool that advances the analysis."

	default:
		return fmt.Sprintf("An error occurred: %v. Adjust your approach and continue.", ctx.Error)
	}
}

// formatToolNames renders a comma-separated list of tool names.
func formatToolNames(toolsList []tools.Tool) string {
	if len(toolsList) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(toolsList))
	for _, tool := range toolsList {
		names = append(names, tool.Name())
	}
	return strings.Join(names, ", ")
}
