package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/logsleuth/logsleuth/pkg/types"
)

func TestSubmitReportTool(t *testing.T) {
	tool := NewSubmitReportTool()

	t.Run("Name", func(t *testing.T) {
		if tool.Name() != "submit_report" {
			t.Errorf("expected name 'submit_report', got '%s'", tool.Name())
		}
	})

	t.Run("IsLoopBreaking", func(t *testing.T) {
		if !tool.IsLoopBreaking() {
			t.Error("submit_report should be loop-breaking")
		}
	})

	t.Run("Execute_Success", func(t *testing.T) {
		args := []byte(`<arguments>
			<event_id>DJC-CF-1211212348-8RJKIC-529-425718</event_id>
			<error_code>-6712</error_code>
			<error_summary>Coupon query failed because the stock pool was empty</error_summary>
			<affected_module>app.coupon.available</affected_module>
			<user_info>QQ:12345</user_info>
			<server_status>degraded</server_status>
			<risk_level>high</risk_level>
			<recommendation>Refill the coupon stock and retry the user's request</recommendation>
			<raw_error_logs>2021-12-11 23:48:21|ER|ret=-6712</raw_error_logs>
		</arguments>`)

		result, metadata, err := tool.Execute(context.Background(), args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(result, `"error_code": "-6712"`) {
			t.Errorf("rendered result should contain the error code, got: %s", result)
		}

		report, ok := metadata[MetadataKeyReport].(*types.AnalysisReport)
		if !ok {
			t.Fatalf("metadata[%q] should hold the report, got %T", MetadataKeyReport, metadata[MetadataKeyReport])
		}
		if report.EventID != "DJC-CF-1211212348-8RJKIC-529-425718" {
			t.Errorf("unexpected event ID: %s", report.EventID)
		}
		if report.RiskLevel != types.RiskHigh {
			t.Errorf("unexpected risk level: %s", report.RiskLevel)
		}
		if report.RawErrorLogs != "2021-12-11 23:48:21|ER|ret=-6712" {
			t.Errorf("raw error logs should be carried into the report, got '%s'", report.RawErrorLogs)
		}
	})

	t.Run("Execute_RiskLevelNormalized", func(t *testing.T) {
		args := []byte(`<arguments>
			<event_id>DJC-CF-123</event_id>
			<error_summary>summary</error_summary>
			<risk_level> CRITICAL </risk_level>
			<recommendation>page the payment on-call</recommendation>
		</arguments>`)

		_, metadata, err := tool.Execute(context.Background(), args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		report := metadata[MetadataKeyReport].(*types.AnalysisReport)
		if report.RiskLevel != types.RiskCritical {
			t.Errorf("risk level should be normalized, got '%s'", report.RiskLevel)
		}
	})

	t.Run("Execute_InvalidRiskLevel", func(t *testing.T) {
		args := []byte(`<arguments>
			<event_id>DJC-CF-123</event_id>
			<error_summary>summary</error_summary>
			<risk_level>severe</risk_level>
			<recommendation>do something</recommendation>
		</arguments>`)

		_, _, err := tool.Execute(context.Background(), args)
		if err == nil {
			t.Error("expected error for invalid risk level")
		}
	})

	t.Run("Execute_MissingRequiredFields", func(t *testing.T) {
		cases := map[string][]byte{
			"event_id":       []byte(`<arguments><error_summary>s</error_summary><risk_level>low</risk_level><recommendation>r</recommendation></arguments>`),
			"error_summary":  []byte(`<arguments><event_id>E-1</event_id><risk_level>low</risk_level><recommendation>r</recommendation></arguments>`),
			"recommendation": []byte(`<arguments><event_id>E-1</event_id><error_summary>s</error_summary><risk_level>low</risk_level></arguments>`),
		}
		for field, args := range cases {
			if _, _, err := tool.Execute(context.Background(), args); err == nil {
				t.Errorf("expected error when %s is missing", field)
			}
		}
	})

	t.Run("Execute_InvalidXML", func(t *testing.T) {
		_, _, err := tool.Execute(context.Background(), []byte(`not xml at all <`))
		if err == nil {
			t.Error("expected error for invalid XML")
		}
	})
}
