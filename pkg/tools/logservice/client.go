// Package logservice fetches raw error logs for an event from the log
// platform's HTTP gateway.
//
// The gateway is a proxying endpoint: the actual query lives in the "url"
// parameter as an embedded query string, and authentication rides on a
// browser cookie. Responses come back as a JavaScript assignment
// ("var log_result={...}") rather than plain JSON.
package logservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/logsleuth/logsleuth/pkg/cache"
	"github.com/logsleuth/logsleuth/pkg/logging"
	"github.com/logsleuth/logsleuth/pkg/types"
)

// ErrAuthRequired indicates the gateway rejected the request because the
// session cookie is missing or expired.
var ErrAuthRequired = errors.New("log service authentication required: set LOG_SERVICE_COOKIE from a logged-in browser session")

// DefaultPlatform is used when an event ID carries no platform prefix.
const DefaultPlatform = "AMS"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// loginMarkers are fragments the gateway emits when the session is invalid.
var loginMarkers = []string{
	"未找到登录",
	"urlJump",
	`"ret":-10`,
}

// Client talks to the log platform gateway.
type Client struct {
	httpClient *http.Client
	gatewayURL string
	referer    string
	cookie     string
	cache      cache.Cache
	logger     *logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithCookie sets the authentication cookie sent with every request.
func WithCookie(cookie string) ClientOption {
	return func(c *Client) {
		c.cookie = cookie
	}
}

// WithReferer overrides the referer the gateway expects.
func WithReferer(referer string) ClientOption {
	return func(c *Client) {
		if referer != "" {
			c.referer = referer
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithCache enables caching of fetched payloads.
func WithCache(store cache.Cache) ClientOption {
	return func(c *Client) {
		c.cache = store
	}
}

// NewClient creates a gateway client. The logger records request details
// to the session log file; HTTP failures surface as returned errors.
func NewClient(gatewayURL, referer string, opts ...ClientOption) *Client {
	logger, _ := logging.NewLogger("logservice")

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		gatewayURL: gatewayURL,
		referer:    referer,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// PlatformFor derives the platform name from an event ID: the segment
// before the first dash, or DefaultPlatform when there is none.
func PlatformFor(eventID string) string {
	if idx := strings.Index(eventID, "-"); idx > 0 {
		return eventID[:idx]
	}
	return DefaultPlatform
}

// Fetch retrieves the raw log text for an event. Cached payloads are
// returned without hitting the gateway.
func (c *Client) Fetch(ctx context.Context, eventID string) (*types.LogDetail, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}

	platform := PlatformFor(eventID)

	if c.cache != nil {
		if data, err := c.cache.Get(ctx, eventID); err == nil {
			c.logger.Debugf("cache hit for event %s", eventID)
			return &types.LogDetail{
				EventID:   eventID,
				Platform:  platform,
				Content:   string(data),
				FetchedAt: time.Now(),
				FromCache: true,
			}, nil
		}
	}

	content, err := c.fetchRemote(ctx, eventID, platform)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, eventID, []byte(content)); err != nil {
			c.logger.Warnf("failed to cache log for %s: %v", eventID, err)
		}
	}

	return &types.LogDetail{
		EventID:   eventID,
		Platform:  platform,
		Content:   content,
		FetchedAt: time.Now(),
	}, nil
}

func (c *Client) fetchRemote(ctx context.Context, eventID, platform string) (string, error) {
	params := url.Values{}
	params.Set("url", fmt.Sprintf("plat_name=%s&serial_num=%s&source_charset=utf8", platform, eventID))
	params.Set("set", "")
	params.Set("referer", c.referer)

	reqURL := c.gatewayURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create log request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.referer)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	c.logger.Infof("fetching log for event %s (platform %s)", eventID, platform)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("log service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("log service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read log response: %w", err)
	}

	content := string(body)

	if isLoginResponse(content) {
		c.logger.Warnf("gateway rejected auth for event %s", eventID)
		return "", ErrAuthRequired
	}

	return DecodeResponse(content), nil
}

// isLoginResponse reports whether the gateway bounced the request to login.
func isLoginResponse(content string) bool {
	for _, marker := range loginMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}
