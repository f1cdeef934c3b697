package logparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logsleuth/logsleuth/pkg/types"
)

func TestDefaultPolicyAssessLine(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name string
		line Line
		want types.RiskLevel
	}{
		{
			name: "payment module is critical",
			line: Line{Level: LevelError, Module: "app.payment.confirm", Content: "charge failed"},
			want: types.RiskCritical,
		},
		{
			name: "pay keyword in content is critical",
			line: Line{Level: LevelError, Module: "order", Content: "midas pay callback timeout"},
			want: types.RiskCritical,
		},
		{
			name: "coupon module is high",
			line: Line{Level: LevelError, Module: "app.coupon.available", Content: "ret=-6712"},
			want: types.RiskHigh,
		},
		{
			name: "login failure is high",
			line: Line{Level: LevelError, Module: "gateway", Content: "login ticket expired"},
			want: types.RiskHigh,
		},
		{
			name: "unmatched error defaults to medium",
			line: Line{Level: LevelError, Module: "cms", Content: "template missing"},
			want: types.RiskMedium,
		},
		{
			name: "unmatched warning defaults to low",
			line: Line{Level: LevelWarning, Module: "cms", Content: "slow render"},
			want: types.RiskLow,
		},
		{
			name: "matching warning still uses the rule",
			line: Line{Level: LevelWarning, Module: "app.payment.query", Content: "retrying"},
			want: types.RiskCritical,
		},
		{
			name: "info lines are always low",
			line: Line{Level: LevelInfo, Module: "app.payment.confirm", Content: "pay ok"},
			want: types.RiskLow,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.AssessLine(tc.line))
		})
	}
}

func TestPolicyAssessPicksHighest(t *testing.T) {
	policy := DefaultPolicy()

	lines := []Line{
		{Level: LevelInfo, Module: "gateway", Content: "request in"},
		{Level: LevelWarning, Module: "cms", Content: "slow"},
		{Level: LevelError, Module: "app.coupon.available", Content: "ret=-6712"},
	}
	assert.Equal(t, types.RiskHigh, policy.Assess(lines))

	assert.Equal(t, types.RiskLow, policy.Assess(nil))
	assert.Equal(t, types.RiskLow, policy.Assess([]Line{{Level: LevelInfo, Content: "ok"}}))
}

func TestLoadPolicy(t *testing.T) {
	t.Run("valid file with partial defaults", func(t *testing.T) {
		path := writePolicyFile(t, `
rules:
  - pattern: "*inventory*"
    risk: high
error_default: low
`)

		policy, err := LoadPolicy(path)
		require.NoError(t, err)

		assert.Equal(t, types.RiskLow, policy.ErrorDefault)
		assert.Equal(t, types.RiskLow, policy.WarningDefault)

		line := Line{Level: LevelError, Module: "inventory_svr", Content: "oversold"}
		assert.Equal(t, types.RiskHigh, policy.AssessLine(line))

		other := Line{Level: LevelError, Module: "cms", Content: "boom"}
		assert.Equal(t, types.RiskLow, policy.AssessLine(other))
	})

	t.Run("invalid risk level is rejected", func(t *testing.T) {
		path := writePolicyFile(t, `
rules:
  - pattern: "*pay*"
    risk: catastrophic
`)

		_, err := LoadPolicy(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid risk level")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "risk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
