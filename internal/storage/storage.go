// Package storage persists learner state as JSON values under string
// keys. Every adapter degrades gracefully: reads return a miss and
// writes are dropped (with a logged warning) rather than surfacing
// errors, so a broken database never takes the app down.
package storage

import "sync"

// Adapter is the key-value persistence surface used by the history
// ledger and the mark registries. Implementations never return errors;
// a failed read is a miss and a failed write is logged and dropped.
type Adapter interface {
	// Get returns the value stored under key. ok is false when the key
	// is absent or the read failed.
	Get(key string) (value []byte, ok bool)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte)

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string)

	// Clear removes every key.
	Clear()
}

// Memory is an in-process Adapter used as the fallback when the SQLite
// database cannot be opened, and in tests. State is lost on exit.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true
}

func (m *Memory) Set(key string, value []byte) {
	cp := make([]byte, len(value))
	copy(cp, value)
	m.mu.Lock()
	m.data[key] = cp
	m.mu.Unlock()
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
}

func (m *Memory) Clear() {
	m.mu.Lock()
	m.data = make(map[string][]byte)
	m.mu.Unlock()
}
