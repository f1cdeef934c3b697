package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsleuth/logsleuth/pkg/types"
)

func sampleReport() *types.AnalysisReport {
	return &types.AnalysisReport{
		EventID:        "DJC-CF-123",
		ErrorCode:      "-6712",
		ErrorSummary:   "coupon stock empty",
		AffectedModule: "app.coupon.available",
		RiskLevel:      types.RiskHigh,
		Recommendation: "refill the stock",
		RawErrorLogs:   "query failed ret=-6712",
	}
}

func TestFormatToolInvocation(t *testing.T) {
	t.Run("no arguments", func(t *testing.T) {
		assert.Equal(t, "submit_report", formatToolInvocation("submit_report", nil))
	})

	t.Run("arguments in stable order", func(t *testing.T) {
		out := formatToolInvocation("fetch_error_log", map[string]interface{}{
			"platform": "DJC",
			"event_id": "DJC-CF-123",
		})
		assert.Equal(t, "fetch_error_log(event_id=DJC-CF-123, platform=DJC)", out)
	})
}

func TestSummarizeResult(t *testing.T) {
	t.Run("collapses whitespace", func(t *testing.T) {
		out := summarizeResult("fetch_error_log", "line one\nline   two")
		assert.Equal(t, "fetch_error_log (19 bytes): line one line two", out)
	})

	t.Run("long results are previewed", func(t *testing.T) {
		out := summarizeResult("fetch_error_log", strings.Repeat("x", 500))
		assert.Contains(t, out, "…")
		assert.Contains(t, out, "(500 bytes)")
	})

	t.Run("multibyte results are cut on runes", func(t *testing.T) {
		out := summarizeResult("fetch_error_log", strings.Repeat("支付失败", 200))
		assert.True(t, utf8.ValidString(out), "preview split a multibyte character")
		assert.Contains(t, out, "…")
	})
}

func TestReportMarkdown(t *testing.T) {
	md := reportMarkdown(sampleReport())

	assert.Contains(t, md, "# Analysis Report: DJC-CF-123")
	assert.Contains(t, md, "**Risk level:** HIGH")
	assert.Contains(t, md, "**Summary:** coupon stock empty")
	assert.Contains(t, md, "| Error code | -6712 |")
	assert.Contains(t, md, "| Affected module | app.coupon.available |")
	assert.Contains(t, md, "## Recommendation")
	assert.Contains(t, md, "```\nquery failed ret=-6712\n```")

	// Empty fields stay out of the table.
	assert.NotContains(t, md, "| User info |")
	assert.NotContains(t, md, "| Server status |")
}

func TestRenderReport(t *testing.T) {
	t.Run("plain markdown", func(t *testing.T) {
		out, err := RenderReport(sampleReport(), false, true)
		require.NoError(t, err)
		assert.Equal(t, reportMarkdown(sampleReport()), out)
	})

	t.Run("plain JSON", func(t *testing.T) {
		out, err := RenderReport(sampleReport(), true, true)
		require.NoError(t, err)
		assert.Contains(t, out, `"event_id": "DJC-CF-123"`)
		assert.Contains(t, out, `"risk_level": "high"`)
	})

	t.Run("highlighted JSON still carries the payload", func(t *testing.T) {
		out, err := RenderReport(sampleReport(), true, false)
		require.NoError(t, err)
		assert.Contains(t, out, "DJC-CF-123")
	})
}

func TestPlainStylesPassThrough(t *testing.T) {
	s := newStyles(true)

	assert.Equal(t, "thinking", s.thinkingHeader("thinking"))
	assert.Equal(t, "[tool]", s.toolBadge("tool"))
	assert.Equal(t, "[done]", s.okBadge("done"))
	assert.Equal(t, "[fail]", s.errBadge("fail"))
	assert.Equal(t, "boom", s.errorText("boom"))
}
