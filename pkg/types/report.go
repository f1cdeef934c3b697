package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// RiskLevel grades the operational severity of an analyzed incident.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"      // RiskLow: ignorable warnings, self-recovered errors.
	RiskMedium   RiskLevel = "medium"   // RiskMedium: non-core feature failures, sporadic errors.
	RiskHigh     RiskLevel = "high"     // RiskHigh: core feature (coupon, login) failures.
	RiskCritical RiskLevel = "critical" // RiskCritical: payment errors, widespread outages.
)

// Valid reports whether the level is one of the defined grades.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Rank returns an ordering value, higher meaning more severe.
// Unknown levels rank below low.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	}
	return 0
}

// AnalysisReport is the structured outcome of analyzing one error event.
// This is the shape the agent must produce at the end of its loop.
type AnalysisReport struct {
	// EventID is the serial number that identifies the incident (e.g.
	// "DJC-CF-1211212348-8RJKIC-529-425718").
	EventID string `json:"event_id"`

	// ErrorCode is the code extracted from the logs (e.g. "-6712").
	ErrorCode string `json:"error_code"`

	// ErrorSummary is a one-line account of which module failed, how, and
	// what user-facing functionality it affects.
	ErrorSummary string `json:"error_summary"`

	// AffectedModule is the log module name (e.g. "app.coupon.available").
	AffectedModule string `json:"affected_module,omitempty"`

	// UserInfo carries user identifiers found in the logs (QQ number etc).
	UserInfo string `json:"user_info,omitempty"`

	// ServerStatus is the inferred state of the backing service.
	ServerStatus string `json:"server_status,omitempty"`

	// RiskLevel grades the incident severity.
	RiskLevel RiskLevel `json:"risk_level"`

	// Recommendation is concrete, actionable handling advice.
	Recommendation string `json:"recommendation"`

	// RawErrorLogs is a short snippet of the triggering log lines.
	RawErrorLogs string `json:"raw_error_logs,omitempty"`
}

// JSON renders the report as indented JSON.
func (r *AnalysisReport) JSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}

// FallbackReport builds the degraded report used when the model output
// could not be parsed into a structured report.
func FallbackReport(eventID, summary string) *AnalysisReport {
	// Truncate on runes: model output is routinely Chinese and a byte
	// slice could split a character.
	const maxSummary = 200
	if runes := []rune(summary); len(runes) > maxSummary {
		summary = string(runes[:maxSummary])
	}
	if summary == "" {
		summary = "model output could not be parsed"
	}
	if eventID == "" {
		eventID = "UNKNOWN"
	}
	return &AnalysisReport{
		EventID:        eventID,
		ErrorCode:      "PARSE_ERROR",
		ErrorSummary:   summary,
		ServerStatus:   "unknown",
		RiskLevel:      RiskMedium,
		Recommendation: "Check that the log page loaded correctly and re-run the analysis.",
	}
}

// LogDetail is the raw material a fetch produces for one event.
type LogDetail struct {
	EventID   string    `json:"event_id"`
	Platform  string    `json:"platform"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetched_at"`
	FromCache bool      `json:"from_cache"`
}

// ServerStatus is a snapshot of one service's health as reported by the
// monitoring system.
type ServerStatus struct {
	ServerName     string  `json:"server_name"`
	Status         string  `json:"status"` // healthy / degraded / down / unknown
	ErrorRate      float64 `json:"error_rate"`
	LastIncident   string  `json:"last_incident,omitempty"`
	TodayIncidents int     `json:"today_incidents"`
}
