package logparse

import (
	"fmt"
	"os"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/logsleuth/logsleuth/pkg/types"
)

// Rule maps a module or content pattern to a risk level. Patterns use glob
// syntax and are matched case-insensitively against the module name first,
// then the line content.
type Rule struct {
	Pattern string          `yaml:"pattern"`
	Risk    types.RiskLevel `yaml:"risk"`

	compiled glob.Glob
}

// Policy assigns a risk level to parsed log lines.
type Policy struct {
	Rules []Rule `yaml:"rules"`

	// ErrorDefault is the risk assigned to error lines no rule matches.
	ErrorDefault types.RiskLevel `yaml:"error_default"`

	// WarningDefault is the risk assigned to warning lines no rule matches.
	WarningDefault types.RiskLevel `yaml:"warning_default"`
}

// DefaultPolicy reflects the operations team's triage conventions: payment
// failures are always critical, core flows (coupons, login) are high, other
// errors are medium and warnings are low.
func DefaultPolicy() *Policy {
	p := &Policy{
		Rules: []Rule{
			{Pattern: "*pay*", Risk: types.RiskCritical},
			{Pattern: "*payment*", Risk: types.RiskCritical},
			{Pattern: "*coupon*", Risk: types.RiskHigh},
			{Pattern: "*login*", Risk: types.RiskHigh},
			{Pattern: "*auth*", Risk: types.RiskHigh},
		},
		ErrorDefault:   types.RiskMedium,
		WarningDefault: types.RiskLow,
	}
	// Built-in patterns always compile.
	if err := p.compile(); err != nil {
		panic(err)
	}
	return p
}

// LoadPolicy reads a YAML policy file. Missing defaults are filled from the
// built-in policy.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read risk policy: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse risk policy: %w", err)
	}

	if p.ErrorDefault == "" {
		p.ErrorDefault = types.RiskMedium
	}
	if p.WarningDefault == "" {
		p.WarningDefault = types.RiskLow
	}

	for i, rule := range p.Rules {
		if !rule.Risk.Valid() {
			return nil, fmt.Errorf("rule %d: invalid risk level %q", i, rule.Risk)
		}
	}
	if !p.ErrorDefault.Valid() {
		return nil, fmt.Errorf("invalid error_default %q", p.ErrorDefault)
	}
	if !p.WarningDefault.Valid() {
		return nil, fmt.Errorf("invalid warning_default %q", p.WarningDefault)
	}

	if err := p.compile(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (p *Policy) compile() error {
	for i := range p.Rules {
		g, err := glob.Compile(strings.ToLower(p.Rules[i].Pattern))
		if err != nil {
			return fmt.Errorf("rule %d: invalid pattern %q: %w", i, p.Rules[i].Pattern, err)
		}
		p.Rules[i].compiled = g
	}
	return nil
}

// AssessLine returns the risk level for a single line.
func (p *Policy) AssessLine(line Line) types.RiskLevel {
	if line.Level != LevelError && line.Level != LevelWarning {
		return types.RiskLow
	}

	module := strings.ToLower(line.Module)
	content := strings.ToLower(line.Content)

	for _, rule := range p.Rules {
		if rule.compiled == nil {
			continue
		}
		if rule.compiled.Match(module) || rule.compiled.Match(content) {
			return rule.Risk
		}
	}

	if line.Level == LevelWarning {
		return p.WarningDefault
	}
	return p.ErrorDefault
}

// Assess returns the highest risk level across all lines. Logs with no
// error or warning lines come back low.
func (p *Policy) Assess(lines []Line) types.RiskLevel {
	highest := types.RiskLow
	for _, line := range lines {
		if line.Level != LevelError && line.Level != LevelWarning {
			continue
		}
		risk := p.AssessLine(line)
		if risk.Rank() > highest.Rank() {
			highest = risk
		}
	}
	return highest
}
