package logservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// byteBudgetTruncator stands in for the tokenizer; it budgets in bytes so
// the test does not depend on an encoding.
type byteBudgetTruncator struct{}

func (byteBudgetTruncator) Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "\n... [truncated]"
}

func newFetchToolServer(t *testing.T, body string) *FetchTool {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)

	return NewFetchTool(NewClient(server.URL, "https://example.com/page"))
}

func TestFetchTool(t *testing.T) {
	t.Run("Name", func(t *testing.T) {
		tool := NewFetchTool(NewClient("http://unused", ""))
		assert.Equal(t, "fetch_error_log", tool.Name())
		assert.False(t, tool.IsLoopBreaking())
	})

	t.Run("Execute", func(t *testing.T) {
		tool := newFetchToolServer(t, `var log_result={"result":[{"content":"query failed ret=-6712"}]}`)

		args := []byte(`<arguments><event_id>DJC-CF-123</event_id></arguments>`)
		result, metadata, err := tool.Execute(context.Background(), args)
		require.NoError(t, err)

		assert.Equal(t, "query failed ret=-6712", result)
		assert.Equal(t, "DJC-CF-123", metadata["event_id"])
		assert.Equal(t, "DJC", metadata["platform"])
		assert.Equal(t, false, metadata["from_cache"])
	})

	t.Run("Execute_ResultBudgetCapsLongLogs", func(t *testing.T) {
		long := strings.Repeat("query failed ret=-6712\\n", 40)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`var log_result={"result":[{"content":"` + long + `"}]}`)) //nolint:errcheck
		}))
		t.Cleanup(server.Close)

		tool := NewFetchTool(
			NewClient(server.URL, "https://example.com/page"),
			WithResultBudget(byteBudgetTruncator{}, 64),
		)

		args := []byte(`<arguments><event_id>DJC-CF-123</event_id></arguments>`)
		result, metadata, err := tool.Execute(context.Background(), args)
		require.NoError(t, err)

		assert.Contains(t, result, "... [truncated]")
		assert.Less(t, len(result), 120)
		assert.Equal(t, true, metadata["truncated"])
	})

	t.Run("Execute_AuthFailureIsContentNotError", func(t *testing.T) {
		// Auth failures go back to the LLM as text so it can report the
		// cookie fix instead of blindly retrying.
		tool := newFetchToolServer(t, `{"ret":-10,"msg":"未找到登录态"}`)

		args := []byte(`<arguments><event_id>DJC-CF-123</event_id></arguments>`)
		result, _, err := tool.Execute(context.Background(), args)
		require.NoError(t, err)
		assert.Contains(t, result, "[ERROR]")
		assert.Contains(t, result, "LOG_SERVICE_COOKIE")
	})

	t.Run("Execute_MissingEventID", func(t *testing.T) {
		tool := NewFetchTool(NewClient("http://unused", ""))

		_, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
		assert.Error(t, err)
	})

	t.Run("Execute_InvalidXML", func(t *testing.T) {
		tool := NewFetchTool(NewClient("http://unused", ""))

		_, _, err := tool.Execute(context.Background(), []byte(`<arguments><event_id></arguments>`))
		assert.Error(t, err)
	})
}
