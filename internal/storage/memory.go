package storage

import (
	"context"
	"sync"
)

// MemoryGateway keeps everything in a map. Used by tests and as the
// "memory" storage type for throwaway sessions.
type MemoryGateway struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{data: make(map[string][]byte)}
}

func (g *MemoryGateway) Save(ctx context.Context, key string, data []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	g.data[key] = cp
	return nil
}

func (g *MemoryGateway) Load(ctx context.Context, key string) ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	data, ok := g.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (g *MemoryGateway) Delete(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.data, key)
	return nil
}

func (g *MemoryGateway) Keys(ctx context.Context) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	keys := make([]string, 0, len(g.data))
	for k := range g.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func (g *MemoryGateway) Close() error {
	return nil
}
