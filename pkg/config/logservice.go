package config

import (
	"sync"
)

const (
	// SectionIDLogService is the identifier for the log service section
	SectionIDLogService = "log_service"

	// DefaultGatewayURL is the log platform's fetch gateway endpoint.
	DefaultGatewayURL = "http://help.ied.com/logplat/curl2.php"

	// DefaultReferer is the page the gateway expects requests to originate from.
	DefaultReferer = "http://help.ied.com/helpv2/html/showInfo_v2.html"

	// DefaultPageURL is the browser-facing log detail page.
	DefaultPageURL = "http://help.ied.com/helpv2/html/showInfo_v2.html"
)

// LogServiceSection manages settings for the internal log platform gateway.
type LogServiceSection struct {
	GatewayURL string
	Referer    string
	PageURL    string
	Cookie     string
	mu         sync.RWMutex
}

// NewLogServiceSection creates a log service section with default endpoints.
func NewLogServiceSection() *LogServiceSection {
	return &LogServiceSection{
		GatewayURL: DefaultGatewayURL,
		Referer:    DefaultReferer,
		PageURL:    DefaultPageURL,
	}
}

// ID returns the section identifier.
func (s *LogServiceSection) ID() string {
	return SectionIDLogService
}

// Title returns the section title.
func (s *LogServiceSection) Title() string {
	return "Log Service"
}

// Description returns the section description.
func (s *LogServiceSection) Description() string {
	return "Configure the log platform gateway and authentication cookie. LOG_SERVICE_URL and LOG_SERVICE_COOKIE environment variables take precedence."
}

// Data returns the current configuration data.
func (s *LogServiceSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"gateway_url": s.GatewayURL,
		"referer":     s.Referer,
		"page_url":    s.PageURL,
		"cookie":      s.Cookie,
	}
}

// SetData updates the configuration from the provided data.
func (s *LogServiceSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["gateway_url"].(string); ok && v != "" {
		s.GatewayURL = v
	}
	if v, ok := data["referer"].(string); ok && v != "" {
		s.Referer = v
	}
	if v, ok := data["page_url"].(string); ok && v != "" {
		s.PageURL = v
	}
	if v, ok := data["cookie"].(string); ok {
		s.Cookie = v
	}

	return nil
}

// Validate validates the current configuration.
func (s *LogServiceSection) Validate() error {
	// The cookie is optional; the gateway reports expired auth at runtime.
	return nil
}

// Reset resets the section to default configuration.
func (s *LogServiceSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GatewayURL = DefaultGatewayURL
	s.Referer = DefaultReferer
	s.PageURL = DefaultPageURL
	s.Cookie = ""
}

// GetGatewayURL returns the configured gateway URL.
func (s *LogServiceSection) GetGatewayURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.GatewayURL
}

// GetReferer returns the configured referer.
func (s *LogServiceSection) GetReferer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Referer
}

// GetPageURL returns the configured log detail page URL.
func (s *LogServiceSection) GetPageURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.PageURL
}

// GetCookie returns the configured authentication cookie.
func (s *LogServiceSection) GetCookie() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Cookie
}

// SetCookie sets the authentication cookie.
func (s *LogServiceSection) SetCookie(cookie string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cookie = cookie
}
