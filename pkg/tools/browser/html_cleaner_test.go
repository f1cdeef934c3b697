package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHTML(t *testing.T) {
	t.Run("strips scripts and styles", func(t *testing.T) {
		raw := `<html><head><title>Log Detail</title><style>body{color:red}</style></head>
<body><script>alert("x")</script><div id="log">query failed ret=-6712</div></body></html>`

		cleaned, err := cleanHTML(raw, 10000)
		require.NoError(t, err)

		assert.Equal(t, "Log Detail", cleaned.Title)
		assert.Contains(t, cleaned.HTML, "query failed ret=-6712")
		assert.NotContains(t, cleaned.HTML, "alert")
		assert.NotContains(t, cleaned.HTML, "color:red")
		assert.False(t, cleaned.Truncated)
	})

	t.Run("preserves targeting attributes", func(t *testing.T) {
		raw := `<div id="content" class="log-panel" style="display:none" onclick="x()">text</div>`

		cleaned, err := cleanHTML(raw, 10000)
		require.NoError(t, err)

		assert.Contains(t, cleaned.HTML, `id="content"`)
		assert.Contains(t, cleaned.HTML, `class="log-panel"`)
		assert.NotContains(t, cleaned.HTML, "style=")
		assert.NotContains(t, cleaned.HTML, "onclick")
	})

	t.Run("extracts meta description", func(t *testing.T) {
		raw := `<html><head><meta name="description" content="error log viewer"></head><body></body></html>`

		cleaned, err := cleanHTML(raw, 10000)
		require.NoError(t, err)
		assert.Equal(t, "error log viewer", cleaned.Description)
	})

	t.Run("truncates long content", func(t *testing.T) {
		raw := "<div>" + strings.Repeat("long log line ", 100) + "</div>"

		cleaned, err := cleanHTML(raw, 50)
		require.NoError(t, err)

		assert.True(t, cleaned.Truncated)
		assert.Contains(t, cleaned.HTML, "...")
	})
}
