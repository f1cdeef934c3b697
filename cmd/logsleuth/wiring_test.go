package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsleuth/logsleuth/pkg/cache"
	"github.com/logsleuth/logsleuth/pkg/types"
)

func TestExtractEventID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare serial",
			text: "DJC-CF-1211212348-8RJKIC-529-425718",
			want: "DJC-CF-1211212348-8RJKIC-529-425718",
		},
		{
			name: "embedded in Chinese text",
			text: "流水号是 DJC-CF-1211212348-8RJKIC-529-425718，帮我看看",
			want: "DJC-CF-1211212348-8RJKIC-529-425718",
		},
		{
			name: "embedded in English text",
			text: "please analyze event XINYUE-AB-20211211-001 for me",
			want: "XINYUE-AB-20211211-001",
		},
		{
			name: "single dash is not a serial",
			text: "the order-service is failing",
			want: "",
		},
		{
			name: "no serial",
			text: "everything is broken",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractEventID(tc.text))
		})
	}
}

func TestLoadRiskPolicy(t *testing.T) {
	t.Run("empty path uses the built-in rules", func(t *testing.T) {
		policy, err := loadRiskPolicy("")
		require.NoError(t, err)
		require.NotNil(t, policy)
		assert.NotEmpty(t, policy.Rules)
	})

	t.Run("loads a rules file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		rules := "rules:\n  - pattern: \"*refund*\"\n    risk: critical\n"
		require.NoError(t, os.WriteFile(path, []byte(rules), 0o644))

		policy, err := loadRiskPolicy(path)
		require.NoError(t, err)
		require.Len(t, policy.Rules, 1)
		assert.Equal(t, types.RiskCritical, policy.Rules[0].Risk)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := loadRiskPolicy(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestBuildCacheDefaultsToMemory(t *testing.T) {
	// Without loaded config there is no Redis address, so the in-process
	// cache backs every command that fetches logs.
	store := buildCache(context.Background())
	_, ok := store.(*cache.MemoryCache)
	assert.True(t, ok, "expected a memory cache, got %T", store)
}

func TestTruncateSummary(t *testing.T) {
	t.Run("short summaries pass through", func(t *testing.T) {
		assert.Equal(t, "stock empty", truncateSummary("stock empty", 80))
	})

	t.Run("multibyte text is cut on runes", func(t *testing.T) {
		got := truncateSummary(strings.Repeat("支付失败", 50), 80)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, 81, utf8.RuneCountInString(got)) // cap plus ellipsis
	})
}
