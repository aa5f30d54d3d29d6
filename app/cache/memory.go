package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process PageStore. Entries expire lazily on read.
type Memory struct {
	mutex   sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	body    []byte
	expires time.Time
}

// NewMemory creates an empty in-memory page store
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mutex.RLock()
	entry, ok := m.entries[key]
	m.mutex.RUnlock()

	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.body, true
}

func (m *Memory) Set(_ context.Context, key string, body []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	stored := make([]byte, len(body))
	copy(stored, body)

	m.mutex.Lock()
	m.entries[key] = memoryEntry{body: stored, expires: time.Now().Add(ttl)}
	m.mutex.Unlock()
}

func (m *Memory) Clear(_ context.Context) {
	m.mutex.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mutex.Unlock()
}
