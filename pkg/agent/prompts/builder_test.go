package prompts

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsleuth/logsleuth/pkg/agent/tools"
	"github.com/logsleuth/logsleuth/pkg/types"
)

func TestPromptBuilderBuild(t *testing.T) {
	t.Run("assembles all sections in order", func(t *testing.T) {
		prompt := NewPromptBuilder().
			WithTools([]tools.Tool{tools.NewSubmitReportTool()}).
			Build()

		sections := []string{
			"<system_capabilities>",
			"<agent_loop>",
			"<chain_of_thought>",
			"<tool_calling>",
			"<available_tools>",
			"<tool_use_rules>",
			"<analysis_guidance>",
		}

		lastIdx := -1
		for _, section := range sections {
			idx := strings.Index(prompt, section)
			require.GreaterOrEqual(t, idx, 0, "prompt should contain %s", section)
			assert.Greater(t, idx, lastIdx, "%s should come after the previous section", section)
			lastIdx = idx
		}

		assert.Contains(t, prompt, "## submit_report")
	})

	t.Run("custom instructions come first", func(t *testing.T) {
		prompt := NewPromptBuilder().
			WithCustomInstructions("Always answer in Chinese.").
			Build()

		assert.True(t, strings.HasPrefix(prompt, "<custom_instructions>"))
		assert.Contains(t, prompt, "Always answer in Chinese.")
	})

	t.Run("no tools means no available_tools section", func(t *testing.T) {
		prompt := NewPromptBuilder().Build()
		assert.NotContains(t, prompt, "<available_tools>")
	})
}

func TestBuildMessages(t *testing.T) {
	history := []*types.Message{
		types.NewSystemMessage("stale system prompt"),
		types.NewUserMessage("analyze DJC-CF-123"),
		types.NewAssistantMessage("fetching"),
	}

	t.Run("system prompt replaces history system messages", func(t *testing.T) {
		messages := BuildMessages("fresh system prompt", history, "", "")

		require.Len(t, messages, 3)
		assert.Equal(t, types.RoleSystem, messages[0].Role)
		assert.Equal(t, "fresh system prompt", messages[0].Content)
		assert.Equal(t, "analyze DJC-CF-123", messages[1].Content)
	})

	t.Run("error context is appended before the user message", func(t *testing.T) {
		messages := BuildMessages("sys", history, "continue", "your tool call failed")

		require.Len(t, messages, 5)
		assert.Equal(t, "your tool call failed", messages[3].Content)
		assert.Equal(t, types.RoleUser, messages[3].Role)
		assert.Equal(t, "continue", messages[4].Content)
	})
}

func TestToolResultMessage(t *testing.T) {
	t.Run("result", func(t *testing.T) {
		msg := ToolResultMessage(ToolResult{ToolName: "fetch_error_log", Result: "log lines here"})
		assert.Equal(t, types.RoleUser, msg.Role)
		assert.Equal(t, "Tool 'fetch_error_log' result:\nlog lines here", msg.Content)
	})

	t.Run("error", func(t *testing.T) {
		msg := ToolResultMessage(ToolResult{ToolName: "check_server_status", Error: errors.New("timeout")})
		assert.Equal(t, "Tool 'check_server_status' error:\ntimeout", msg.Content)
	})
}

func TestBuildErrorRecoveryMessage(t *testing.T) {
	t.Run("tool execution", func(t *testing.T) {
		msg := BuildErrorRecoveryMessage(ErrorRecoveryContext{
			Type:     ErrorTypeToolExecution,
			ToolName: "fetch_error_log",
			Error:    errors.New("gateway returned status 502"),
		})
		assert.Contains(t, msg, "fetch_error_log")
		assert.Contains(t, msg, "gateway returned status 502")
	})

	t.Run("unknown tool lists the alternatives", func(t *testing.T) {
		msg := BuildErrorRecoveryMessage(ErrorRecoveryContext{
			Type:           ErrorTypeUnknownTool,
			ToolName:       "grep_logs",
			AvailableTools: []tools.Tool{tools.NewSubmitReportTool()},
		})
		assert.Contains(t, msg, "grep_logs")
		assert.Contains(t, msg, "submit_report")
	})

	t.Run("parse failure mentions escaping", func(t *testing.T) {
		msg := BuildErrorRecoveryMessage(ErrorRecoveryContext{
			Type:  ErrorTypeParseFailure,
			Error: errors.New("unexpected EOF"),
		})
		assert.Contains(t, msg, "unexpected EOF")
		assert.Contains(t, msg, "&amp;")
	})

	t.Run("no tool call points at submit_report", func(t *testing.T) {
		msg := BuildErrorRecoveryMessage(ErrorRecoveryContext{Type: ErrorTypeNoToolCall})
		assert.Contains(t, msg, "submit_report")
	})
}

func TestFormatToolSchemas(t *testing.T) {
	out := FormatToolSchemas([]tools.Tool{tools.NewSubmitReportTool()})

	assert.Contains(t, out, "## submit_report")
	assert.Contains(t, out, "Parameters:")
	assert.Contains(t, out, "event_id (string, required)")
	assert.Contains(t, out, "affected_module (string, optional)")
	// Enum values surface in the parameter docs.
	assert.Contains(t, out, `Allowed values: ["low","medium","high","critical"]`)
	// A usage example is rendered as a tool call.
	assert.Contains(t, out, "<tool_name>submit_report</tool_name>")
}
