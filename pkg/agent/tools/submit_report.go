package tools

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/logsleuth/logsleuth/pkg/types"
)

const submitReportToolName = "submit_report"

// MetadataKeyReport is the tool-result metadata key under which the parsed
// report is published for the agent loop.
const MetadataKeyReport = "report"

// SubmitReportTool is the loop-breaking tool the agent calls once its
// investigation is finished. It validates the structured analysis report
// and hands it back through result metadata.
type SubmitReportTool struct{}

// NewSubmitReportTool creates a new submit report tool
func NewSubmitReportTool() *SubmitReportTool {
	return &SubmitReportTool{}
}

// Name returns the tool's identifier
func (t *SubmitReportTool) Name() string {
	return submitReportToolName
}

// Description returns a description of what this tool does
func (t *SubmitReportTool) Description() string {
	return "Submit the final analysis report once the investigation is complete. " +
		"Call this exactly once, after fetching the error log and checking server status. " +
		"All findings must come from the fetched log and status reports, not guesses."
}

// Schema returns the JSON schema for the tool's arguments
func (t *SubmitReportTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"event_id": map[string]interface{}{
				"type":        "string",
				"description": "The event ID that was analyzed, e.g. DJC-CF-1211212348-8RJKIC-529-425718",
			},
			"error_code": map[string]interface{}{
				"type":        "string",
				"description": "The business error code extracted from the log, e.g. -6712",
			},
			"error_summary": map[string]interface{}{
				"type":        "string",
				"description": "One sentence: which module failed, what went wrong, what functionality is affected",
			},
			"affected_module": map[string]interface{}{
				"type":        "string",
				"description": "The failing module name from the log, e.g. app.coupon.available",
			},
			"user_info": map[string]interface{}{
				"type":        "string",
				"description": "User context extracted from the log (QQ number, order ID, request parameters)",
			},
			"server_status": map[string]interface{}{
				"type":        "string",
				"description": "Current state of the involved service as inferred from logs and status reports",
			},
			"risk_level": map[string]interface{}{
				"type":        "string",
				"description": "One of: low, medium, high, critical",
				"enum":        []string{"low", "medium", "high", "critical"},
			},
			"recommendation": map[string]interface{}{
				"type":        "string",
				"description": "Concrete, actionable next steps for the operations team",
			},
			"raw_error_logs": map[string]interface{}{
				"type":        "string",
				"description": "The handful of verbatim log lines that triggered the analysis",
			},
		},
		[]string{"event_id", "error_summary", "risk_level", "recommendation"},
	)
}

// Execute validates the report arguments and returns the report both as a
// rendered result string and as structured metadata.
func (t *SubmitReportTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName        xml.Name `xml:"arguments"`
		EventID        string   `xml:"event_id"`
		ErrorCode      string   `xml:"error_code"`
		ErrorSummary   string   `xml:"error_summary"`
		AffectedModule string   `xml:"affected_module"`
		UserInfo       string   `xml:"user_info"`
		ServerStatus   string   `xml:"server_status"`
		RiskLevel      string   `xml:"risk_level"`
		Recommendation string   `xml:"recommendation"`
		RawErrorLogs   string   `xml:"raw_error_logs"`
	}

	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for %s: %w", submitReportToolName, err)
	}

	if strings.TrimSpace(args.EventID) == "" {
		return "", nil, fmt.Errorf("event_id cannot be empty")
	}
	if strings.TrimSpace(args.ErrorSummary) == "" {
		return "", nil, fmt.Errorf("error_summary cannot be empty")
	}
	if strings.TrimSpace(args.Recommendation) == "" {
		return "", nil, fmt.Errorf("recommendation cannot be empty")
	}

	risk := types.RiskLevel(strings.ToLower(strings.TrimSpace(args.RiskLevel)))
	if !risk.Valid() {
		return "", nil, fmt.Errorf("risk_level must be one of low, medium, high, critical; got %q", args.RiskLevel)
	}

	report := &types.AnalysisReport{
		EventID:        strings.TrimSpace(args.EventID),
		ErrorCode:      strings.TrimSpace(args.ErrorCode),
		ErrorSummary:   strings.TrimSpace(args.ErrorSummary),
		AffectedModule: strings.TrimSpace(args.AffectedModule),
		UserInfo:       strings.TrimSpace(args.UserInfo),
		ServerStatus:   strings.TrimSpace(args.ServerStatus),
		RiskLevel:      risk,
		Recommendation: strings.TrimSpace(args.Recommendation),
		RawErrorLogs:   strings.TrimSpace(args.RawErrorLogs),
	}

	rendered, err := report.JSON()
	if err != nil {
		return "", nil, fmt.Errorf("failed to render report: %w", err)
	}

	return rendered, map[string]interface{}{
		MetadataKeyReport: report,
	}, nil
}

// IsLoopBreaking returns true because submitting the report ends the run
func (t *SubmitReportTool) IsLoopBreaking() bool {
	return true
}
