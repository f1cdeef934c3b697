package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDCache is the identifier for the cache settings section
	SectionIDCache = "cache"

	// DefaultCacheTTLSeconds is how long fetched logs stay cached.
	DefaultCacheTTLSeconds = 300
)

// CacheSection configures caching of fetched log payloads.
//
// With an empty RedisAddr the in-process memory cache is used; setting it
// switches fetch caching to Redis so repeated lookups of the same event are
// shared across invocations.
type CacheSection struct {
	RedisAddr  string
	TTLSeconds int
	mu         sync.RWMutex
}

// NewCacheSection creates a cache section with default settings.
func NewCacheSection() *CacheSection {
	return &CacheSection{
		TTLSeconds: DefaultCacheTTLSeconds,
	}
}

// ID returns the section identifier.
func (s *CacheSection) ID() string {
	return SectionIDCache
}

// Title returns the section title.
func (s *CacheSection) Title() string {
	return "Fetch Cache"
}

// Description returns the section description.
func (s *CacheSection) Description() string {
	return "Configure caching of fetched log payloads. Set redis_addr to share the cache across invocations; leave empty for per-process memory caching."
}

// Data returns the current configuration data.
func (s *CacheSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"redis_addr":  s.RedisAddr,
		"ttl_seconds": s.TTLSeconds,
	}
}

// SetData updates the configuration from the provided data.
func (s *CacheSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["redis_addr"].(string); ok {
		s.RedisAddr = v
	}

	// JSON numbers decode as float64
	switch v := data["ttl_seconds"].(type) {
	case float64:
		s.TTLSeconds = int(v)
	case int:
		s.TTLSeconds = v
	}

	return nil
}

// Validate validates the current configuration.
func (s *CacheSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.TTLSeconds < 0 {
		return fmt.Errorf("ttl_seconds must not be negative, got %d", s.TTLSeconds)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *CacheSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RedisAddr = ""
	s.TTLSeconds = DefaultCacheTTLSeconds
}

// GetRedisAddr returns the configured Redis address.
func (s *CacheSection) GetRedisAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.RedisAddr
}

// GetTTL returns the configured cache TTL as a duration.
func (s *CacheSection) GetTTL() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(s.TTLSeconds) * time.Second
}
