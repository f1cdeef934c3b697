package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("queries the configured endpoint", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte("=== Service Health Report: coupon-service ===\nStatus: HEALTHY")) //nolint:errcheck
		}))
		defer server.Close()

		client := NewClient(server.URL)

		report, err := client.Status(ctx, "coupon-service")
		require.NoError(t, err)

		assert.Equal(t, "/api/status/coupon-service", gotPath)
		assert.Contains(t, report, "coupon-service")
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL)

		_, err := client.Status(ctx, "coupon-service")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("unreachable endpoint falls back to snapshot", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")

		report, err := client.Status(ctx, "order-service")
		require.NoError(t, err)
		assert.Contains(t, report, "order-service")
		assert.Contains(t, report, "DEGRADED")
	})

	t.Run("empty endpoint uses snapshots", func(t *testing.T) {
		client := NewClient("")

		report, err := client.Status(ctx, "payment-service")
		require.NoError(t, err)
		assert.Contains(t, report, "DOWN - CRITICAL")
	})

	t.Run("unknown service snapshot", func(t *testing.T) {
		client := NewClient("")

		report, err := client.Status(ctx, "no-such-service")
		require.NoError(t, err)
		assert.Contains(t, report, "UNKNOWN")
	})

	t.Run("empty service name is rejected", func(t *testing.T) {
		client := NewClient("")

		_, err := client.Status(ctx, "  ")
		assert.Error(t, err)
	})
}

func TestStatusTool(t *testing.T) {
	tool := NewStatusTool(NewClient(""))

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, "check_server_status", tool.Name())
	})

	t.Run("IsLoopBreaking", func(t *testing.T) {
		assert.False(t, tool.IsLoopBreaking())
	})

	t.Run("Execute", func(t *testing.T) {
		args := []byte(`<arguments><service_name>auth-service</service_name></arguments>`)

		report, metadata, err := tool.Execute(context.Background(), args)
		require.NoError(t, err)
		assert.Contains(t, report, "auth-service")
		assert.Equal(t, "auth-service", metadata["service_name"])
	})

	t.Run("Execute_MissingServiceName", func(t *testing.T) {
		_, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
		assert.Error(t, err)
	})
}
