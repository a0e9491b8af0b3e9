package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/cartstore-demo/internal/port"
)

type memoryKV struct {
	mu    sync.RWMutex
	store map[string]string
}

func NewMemoryKV() port.KeyValueStore {
	return &memoryKV{
		store: make(map[string]string),
	}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, found := m.store[key]
	return value, found, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[key] = value
	return nil
}

func (m *memoryKV) Remove(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}
