package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates and initializes the global configuration manager.
// This should be called once at application startup.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	// Create file store
	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	// Create manager
	manager := NewManager(store)

	// Register default sections
	if err := manager.RegisterSection(NewLLMSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewLogServiceSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewMonitorSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewCacheSection()); err != nil {
		return err
	}

	// Load configuration
	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetLLM returns the LLM settings section from global config.
// Returns nil if config is not initialized.
func GetLLM() *LLMSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDLLM)
	if !ok {
		return nil
	}

	llm, ok := section.(*LLMSection)
	if !ok {
		return nil
	}

	return llm
}

// GetLogService returns the log service section from global config.
// Returns nil if config is not initialized.
func GetLogService() *LogServiceSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDLogService)
	if !ok {
		return nil
	}

	logService, ok := section.(*LogServiceSection)
	if !ok {
		return nil
	}

	return logService
}

// GetMonitor returns the service monitor section from global config.
// Returns nil if config is not initialized.
func GetMonitor() *MonitorSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDMonitor)
	if !ok {
		return nil
	}

	monitor, ok := section.(*MonitorSection)
	if !ok {
		return nil
	}

	return monitor
}

// GetCache returns the cache settings section from global config.
// Returns nil if config is not initialized.
func GetCache() *CacheSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDCache)
	if !ok {
		return nil
	}

	cache, ok := section.(*CacheSection)
	if !ok {
		return nil
	}

	return cache
}
