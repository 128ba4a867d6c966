// Package oneshot remembers which melodies have already been played, so a
// tune meant to sound once per power cycle is not repeated.
package oneshot

import (
	"context"
	"sync"
)

type Flag interface {
	// Acquire returns true only for the first caller with a given key.
	Acquire(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type Memory struct {
	mu     sync.Mutex
	played map[string]bool
}

func NewMemory() *Memory {
	return &Memory{played: make(map[string]bool)}
}

func (m *Memory) Acquire(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.played[key] {
		return false, nil
	}
	m.played[key] = true
	return true, nil
}

func (m *Memory) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.played, key)
	return nil
}
