package monitor

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/logsleuth/logsleuth/pkg/agent/tools"
)

const statusToolName = "check_server_status"

// StatusTool exposes health checks to the agent as check_server_status.
type StatusTool struct {
	client *Client
}

// NewStatusTool creates a status tool backed by the given client.
func NewStatusTool(client *Client) *StatusTool {
	return &StatusTool{client: client}
}

// Name returns the tool's identifier
func (t *StatusTool) Name() string {
	return statusToolName
}

// Description returns a description of what this tool does
func (t *StatusTool) Description() string {
	return "Query today's stability report for a service. " +
		"Returns the monitoring system's text report with current status, error rate, today's incidents and resource usage. " +
		"Use the service name parsed from the log, e.g. order-service, auth-service, payment-service."
}

// Schema returns the JSON schema for the tool's arguments
func (t *StatusTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"service_name": map[string]interface{}{
				"type":        "string",
				"description": "The service name parsed from the log, e.g. order-service, auth-service, payment-service",
			},
		},
		[]string{"service_name"},
	)
}

// Execute fetches the health report and returns its text.
func (t *StatusTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName     xml.Name `xml:"arguments"`
		ServiceName string   `xml:"service_name"`
	}

	if err := tools.UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for %s: %w", statusToolName, err)
	}

	if args.ServiceName == "" {
		return "", nil, fmt.Errorf("service_name cannot be empty")
	}

	report, err := t.client.Status(ctx, args.ServiceName)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check status of %s: %w", args.ServiceName, err)
	}

	return report, map[string]interface{}{
		"service_name": args.ServiceName,
	}, nil
}

// IsLoopBreaking returns false; status checks are intermediate steps
func (t *StatusTool) IsLoopBreaking() bool {
	return false
}
