package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/debemdeboas/swipestate/internal/cache"
)

// MemoryBackend keeps blobs in process memory.
type MemoryBackend struct {
	items *cache.Cache[string, []byte]
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: cache.NewCache[string, []byte]()}
}

// NewMemory returns a ready Store with no persistence, mostly for tests.
func NewMemory() *Adapter {
	return NewAdapter(NewMemoryBackend(), 0)
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return nil, fmt.Errorf("memory: %w", ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	m.items.Set(key, append([]byte(nil), value...))
	return nil
}

func (m *MemoryBackend) Keys(_ context.Context) ([]string, error) {
	return m.items.Keys(strings.Compare), nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
