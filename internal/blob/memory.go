package blob

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-process Store, used in tests and single-node dev runs.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
	baseURL string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "memory://blob"
	}
	return &MemoryStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
		baseURL: baseURL,
	}
}

func (m *MemoryStore) PutObject(_ context.Context, key string, data []byte, contentType string) (int64, error) {
	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = cp
	m.types[key] = contentType
	return int64(len(cp)), nil
}

func (m *MemoryStore) GetObject(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *MemoryStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[key]; !ok {
		return "", ErrObjectNotFound
	}
	return fmt.Sprintf("%s/%s?expires=%d", m.baseURL, key, int(ttl.Seconds())), nil
}

func (m *MemoryStore) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	delete(m.types, key)
	return nil
}

// Len reports how many objects are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
