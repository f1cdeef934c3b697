package logservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsleuth/logsleuth/pkg/cache"
)

func TestClientFetch(t *testing.T) {
	t.Run("sends gateway parameters and cookie", func(t *testing.T) {
		var gotURL, gotCookie, gotReferer string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotURL = r.URL.Query().Get("url")
			gotCookie = r.Header.Get("Cookie")
			gotReferer = r.Header.Get("Referer")
			w.Write([]byte(`var log_result={"result":[{"content":"line one"}]}`)) //nolint:errcheck
		}))
		defer server.Close()

		client := NewClient(server.URL, "https://example.com/page",
			WithCookie("session=abc123"))

		detail, err := client.Fetch(context.Background(), "DJC-CF-123-456")
		require.NoError(t, err)

		assert.Equal(t, "plat_name=DJC&serial_num=DJC-CF-123-456&source_charset=utf8", gotURL)
		assert.Equal(t, "session=abc123", gotCookie)
		assert.Equal(t, "https://example.com/page", gotReferer)

		assert.Equal(t, "DJC-CF-123-456", detail.EventID)
		assert.Equal(t, "DJC", detail.Platform)
		assert.Equal(t, "line one", detail.Content)
		assert.False(t, detail.FromCache)
	})

	t.Run("login bounce surfaces ErrAuthRequired", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ret":-10,"msg":"未找到登录态"}`)) //nolint:errcheck
		}))
		defer server.Close()

		client := NewClient(server.URL, "https://example.com/page")

		_, err := client.Fetch(context.Background(), "DJC-CF-123-456")
		assert.ErrorIs(t, err, ErrAuthRequired)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, "https://example.com/page")

		_, err := client.Fetch(context.Background(), "DJC-CF-123-456")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})

	t.Run("empty event ID is rejected", func(t *testing.T) {
		client := NewClient("http://unused", "https://example.com/page")

		_, err := client.Fetch(context.Background(), "   ")
		assert.Error(t, err)
	})

	t.Run("second fetch comes from cache", func(t *testing.T) {
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Write([]byte(`var log_result={"result":[{"content":"cached line"}]}`)) //nolint:errcheck
		}))
		defer server.Close()

		client := NewClient(server.URL, "https://example.com/page",
			WithCache(cache.NewMemoryCache(cache.DefaultTTL)))

		first, err := client.Fetch(context.Background(), "DJC-CF-123-456")
		require.NoError(t, err)
		second, err := client.Fetch(context.Background(), "DJC-CF-123-456")
		require.NoError(t, err)

		assert.Equal(t, 1, hits)
		assert.False(t, first.FromCache)
		assert.True(t, second.FromCache)
		assert.Equal(t, first.Content, second.Content)
	})
}
