package config

import (
	"sync"
)

const (
	// SectionIDMonitor is the identifier for the service monitor section
	SectionIDMonitor = "monitor"
)

// MonitorSection configures the service health monitor endpoint.
//
// When no endpoint is configured, health checks fall back to built-in
// snapshot reports so analysis can proceed without a live monitor.
type MonitorSection struct {
	Endpoint string
	mu       sync.RWMutex
}

// NewMonitorSection creates a monitor section with default settings.
func NewMonitorSection() *MonitorSection {
	return &MonitorSection{}
}

// ID returns the section identifier.
func (s *MonitorSection) ID() string {
	return SectionIDMonitor
}

// Title returns the section title.
func (s *MonitorSection) Title() string {
	return "Service Monitor"
}

// Description returns the section description.
func (s *MonitorSection) Description() string {
	return "Configure the health monitor endpoint queried by check_server_status. Leave empty to use built-in snapshot reports."
}

// Data returns the current configuration data.
func (s *MonitorSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"endpoint": s.Endpoint,
	}
}

// SetData updates the configuration from the provided data.
func (s *MonitorSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["endpoint"].(string); ok {
		s.Endpoint = v
	}

	return nil
}

// Validate validates the current configuration.
func (s *MonitorSection) Validate() error {
	return nil
}

// Reset resets the section to default configuration.
func (s *MonitorSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Endpoint = ""
}

// GetEndpoint returns the configured monitor endpoint.
func (s *MonitorSection) GetEndpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Endpoint
}

// SetEndpoint sets the monitor endpoint.
func (s *MonitorSection) SetEndpoint(endpoint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Endpoint = endpoint
}
