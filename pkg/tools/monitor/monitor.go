// Package monitor queries service health for the analysis agent.
//
// When a monitor endpoint is configured, reports come from
// GET <endpoint>/api/status/<service>. Without one, built-in snapshot
// reports stand in so analysis still works against environments where the
// monitoring system is unreachable.
package monitor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/logsleuth/logsleuth/pkg/logging"
)

// Client fetches service health reports.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a monitor client. An empty endpoint selects the
// built-in snapshot reports.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	logger, _ := logging.NewLogger("monitor")

	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   endpoint,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Status returns the health report text for a service.
func (c *Client) Status(ctx context.Context, serviceName string) (string, error) {
	serviceName = strings.TrimSpace(serviceName)
	if serviceName == "" {
		return "", fmt.Errorf("service name cannot be empty")
	}

	if c.endpoint == "" {
		c.logger.Debugf("no monitor endpoint configured, using snapshot report for %s", serviceName)
		return snapshotReport(serviceName), nil
	}

	reqURL := fmt.Sprintf("%s/api/status/%s", strings.TrimSuffix(c.endpoint, "/"), serviceName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create status request: %w", err)
	}

	c.logger.Infof("querying monitor for %s", serviceName)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("monitor unreachable (%v), falling back to snapshot report", err)
		return snapshotReport(serviceName), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("monitor returned status %d for %s", resp.StatusCode, serviceName)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read monitor response: %w", err)
	}

	return string(body), nil
}
