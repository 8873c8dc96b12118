package extraction

import "sync"

// ContextSnapshot is a read-only copy of short-term context memory,
// oldest entry first.
type ContextSnapshot struct {
	Entries []string `json:"entries"`
}

// ContextMemory keeps the most recent observations, bounded by size.
type ContextMemory struct {
	mu      sync.RWMutex
	entries []string
	size    int
}

func NewContextMemory(size int) *ContextMemory {
	if size <= 0 {
		size = 32
	}
	return &ContextMemory{size: size}
}

func (m *ContextMemory) Remember(entries ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	if over := len(m.entries) - m.size; over > 0 {
		m.entries = append([]string(nil), m.entries[over:]...)
	}
}

func (m *ContextMemory) Snapshot() ContextSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ContextSnapshot{Entries: append([]string{}, m.entries...)}
}
