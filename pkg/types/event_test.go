package types

import (
	"errors"
	"testing"
)

func TestEventConstructors(t *testing.T) {
	t.Run("report event", func(t *testing.T) {
		report := &AnalysisReport{EventID: "DJC-CF-123", RiskLevel: RiskHigh}
		e := NewReportEvent(report)

		if e.Type != EventTypeReport {
			t.Errorf("expected report event, got '%s'", e.Type)
		}
		if e.Report != report {
			t.Error("event should carry the report")
		}
	})

	t.Run("error event", func(t *testing.T) {
		err := errors.New("stream broke")
		e := NewErrorEvent(err)

		if !e.IsErrorEvent() {
			t.Error("should be an error event")
		}
		if !errors.Is(e.Error, err) {
			t.Error("event should carry the error")
		}
	})

	t.Run("token usage event", func(t *testing.T) {
		e := NewTokenUsageEvent(100, 20, 120)

		if e.TokenUsage == nil || e.TokenUsage.TotalTokens != 120 {
			t.Errorf("unexpected token usage: %+v", e.TokenUsage)
		}
	})

	t.Run("api call events carry the api name", func(t *testing.T) {
		start := NewAPICallStartEvent("llm")
		if start.Metadata["api_name"] != "llm" {
			t.Errorf("unexpected metadata: %v", start.Metadata)
		}
	})
}

func TestEventClassifiers(t *testing.T) {
	if !NewThinkingContentEvent("x").IsThinkingEvent() {
		t.Error("thinking content should classify as thinking")
	}
	if !NewThinkingContentEvent("x").IsContentEvent() {
		t.Error("thinking content should classify as content")
	}
	if !NewMessageContentEvent("x").IsMessageEvent() {
		t.Error("message content should classify as message")
	}
	if !NewToolCallEvent("fetch_error_log", nil).IsToolEvent() {
		t.Error("tool call should classify as tool event")
	}
	if NewTurnEndEvent().IsToolEvent() {
		t.Error("turn end is not a tool event")
	}
}

func TestWithMetadata(t *testing.T) {
	e := (&AgentEvent{Type: EventTypeToolResult}).WithMetadata("report", "value")
	if e.Metadata["report"] != "value" {
		t.Errorf("unexpected metadata: %v", e.Metadata)
	}
}
