package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/logsleuth/logsleuth/pkg/types"
)

// maxResultPreview caps the tool-result preview shown in the event stream.
const maxResultPreview = 160

// styles bundles the lipgloss styles used by the CLI renderer. In plain
// mode every style renders unmodified text.
type styles struct {
	plain bool

	thinking lipgloss.Style
	dim      lipgloss.Style
	tool     lipgloss.Style
	toolTag  lipgloss.Style
	okTag    lipgloss.Style
	errTag   lipgloss.Style
	errText  lipgloss.Style
}

func newStyles(plain bool) *styles {
	return &styles{
		plain:    plain,
		thinking: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		tool:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		toolTag:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		okTag:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		errTag:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func (s *styles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

func (s *styles) thinkingHeader(text string) string { return s.render(s.thinking, text) }
func (s *styles) dimText(text string) string        { return s.render(s.dim, text) }
func (s *styles) toolText(text string) string       { return s.render(s.tool, text) }
func (s *styles) toolBadge(text string) string      { return s.render(s.toolTag, "["+text+"]") }
func (s *styles) okBadge(text string) string        { return s.render(s.okTag, "["+text+"]") }
func (s *styles) errBadge(text string) string       { return s.render(s.errTag, "["+text+"]") }
func (s *styles) errorText(text string) string      { return s.render(s.errText, text) }

// formatToolInvocation renders "name(key=value, ...)" with stable key order.
func formatToolInvocation(toolName string, input map[string]interface{}) string {
	if len(input) == 0 {
		return toolName
	}

	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, input[k]))
	}
	return fmt.Sprintf("%s(%s)", toolName, strings.Join(parts, ", "))
}

// summarizeResult shortens a tool result for the live event stream. The
// full result still reaches the model; the terminal only needs a preview.
// The preview is cut on runes so Chinese log text is never split mid-character.
func summarizeResult(toolName, result string) string {
	oneLine := strings.Join(strings.Fields(result), " ")
	if runes := []rune(oneLine); len(runes) > maxResultPreview {
		oneLine = string(runes[:maxResultPreview]) + "…"
	}
	return fmt.Sprintf("%s (%d bytes): %s", toolName, len(result), oneLine)
}

// renderReport produces the final report block for this executor's options.
func (e *Executor) renderReport(report *types.AnalysisReport) (string, error) {
	return RenderReport(report, e.jsonOutput, e.plain)
}

// RenderReport renders the final report block: highlighted JSON when
// jsonOutput is set, styled Markdown otherwise, undecorated text in plain
// mode. Exported so other executors can share the report rendering.
func RenderReport(report *types.AnalysisReport, jsonOutput, plain bool) (string, error) {
	if jsonOutput {
		payload, err := report.JSON()
		if err != nil {
			return "", err
		}
		if plain {
			return payload, nil
		}
		var sb strings.Builder
		if err := quick.Highlight(&sb, payload, "json", "terminal256", "monokai"); err != nil {
			// Highlighting is cosmetic; fall back to the raw payload
			return payload, nil
		}
		return sb.String(), nil
	}

	markdown := reportMarkdown(report)
	if plain {
		return markdown, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown, nil
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown, nil
	}
	return rendered, nil
}

// reportMarkdown renders the analysis report as a Markdown document.
func reportMarkdown(report *types.AnalysisReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Analysis Report: %s\n\n", report.EventID))
	sb.WriteString(fmt.Sprintf("**Risk level:** %s\n\n", strings.ToUpper(string(report.RiskLevel))))
	sb.WriteString(fmt.Sprintf("**Summary:** %s\n\n", report.ErrorSummary))

	sb.WriteString("| Field | Value |\n|---|---|\n")
	writeRow := func(field, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", field, value))
		}
	}
	writeRow("Error code", report.ErrorCode)
	writeRow("Affected module", report.AffectedModule)
	writeRow("User info", report.UserInfo)
	writeRow("Server status", report.ServerStatus)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("## Recommendation\n\n%s\n", report.Recommendation))

	if report.RawErrorLogs != "" {
		sb.WriteString(fmt.Sprintf("\n## Triggering log lines\n\n```\n%s\n```\n", report.RawErrorLogs))
	}

	return sb.String()
}
