package types

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRiskLevelValid(t *testing.T) {
	for _, level := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical} {
		if !level.Valid() {
			t.Errorf("%s should be valid", level)
		}
	}
	for _, level := range []RiskLevel{"", "severe", "LOW"} {
		if level.Valid() {
			t.Errorf("%q should not be valid", level)
		}
	}
}

func TestRiskLevelRank(t *testing.T) {
	if !(RiskCritical.Rank() > RiskHigh.Rank() &&
		RiskHigh.Rank() > RiskMedium.Rank() &&
		RiskMedium.Rank() > RiskLow.Rank()) {
		t.Error("risk levels should rank critical > high > medium > low")
	}
	if RiskLevel("bogus").Rank() >= RiskLow.Rank() {
		t.Error("unknown levels should rank below low")
	}
}

func TestAnalysisReportJSON(t *testing.T) {
	report := &AnalysisReport{
		EventID:        "DJC-CF-123",
		ErrorCode:      "-6712",
		ErrorSummary:   "coupon stock empty",
		RiskLevel:      RiskHigh,
		Recommendation: "refill the stock",
	}

	out, err := report.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"event_id": "DJC-CF-123"`) {
		t.Errorf("JSON should contain the event id, got: %s", out)
	}
	// Empty optional fields stay out of the payload.
	if strings.Contains(out, "affected_module") {
		t.Errorf("empty optional fields should be omitted, got: %s", out)
	}
}

func TestFallbackReport(t *testing.T) {
	t.Run("carries the partial summary", func(t *testing.T) {
		r := FallbackReport("DJC-CF-123", "the model rambled about coupons")

		if r.ErrorCode != "PARSE_ERROR" {
			t.Errorf("expected PARSE_ERROR, got '%s'", r.ErrorCode)
		}
		if r.EventID != "DJC-CF-123" {
			t.Errorf("unexpected event id '%s'", r.EventID)
		}
		if r.ErrorSummary != "the model rambled about coupons" {
			t.Errorf("unexpected summary '%s'", r.ErrorSummary)
		}
		if r.RiskLevel != RiskMedium {
			t.Errorf("fallback risk should be medium, got '%s'", r.RiskLevel)
		}
	})

	t.Run("long summaries are truncated", func(t *testing.T) {
		r := FallbackReport("DJC-CF-123", strings.Repeat("x", 500))
		if len(r.ErrorSummary) != 200 {
			t.Errorf("summary should be capped at 200 chars, got %d", len(r.ErrorSummary))
		}
	})

	t.Run("multibyte summaries are cut on runes", func(t *testing.T) {
		r := FallbackReport("DJC-CF-123", strings.Repeat("支付失败", 300))
		if !utf8.ValidString(r.ErrorSummary) {
			t.Error("truncation split a multibyte character")
		}
		if n := utf8.RuneCountInString(r.ErrorSummary); n != 200 {
			t.Errorf("summary should be capped at 200 runes, got %d", n)
		}
	})

	t.Run("empty inputs get placeholders", func(t *testing.T) {
		r := FallbackReport("", "")
		if r.EventID != "UNKNOWN" {
			t.Errorf("unexpected event id '%s'", r.EventID)
		}
		if r.ErrorSummary == "" {
			t.Error("summary should never be empty")
		}
	})
}
