// Package cache holds last-known-good snapshots keyed by name.
package cache

import "sync"

// Keys used by the portfolio loader.
const (
	KeyProjects    = "projects"
	KeyExperiences = "experiences"
)

// Cache is a small string key/value store. Set overwrites the whole value.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Memory is an in-process Cache. The zero value is ready to use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]string)
	}
	m.entries[key] = value
	return nil
}

// Clear drops every entry.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]string)
	m.mu.Unlock()
}
