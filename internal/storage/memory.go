package storage

import (
	"context"
	"sync"
)

// MemoryStore implements Store using an in-process map. It is intended for
// single-process deployments and tests; records are kept until deleted, never
// expired, so the engine's window arithmetic stays observable.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

// Exists reports whether a record is present for the given key.
func (ms *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	_, ok := ms.data[key]
	return ok, nil
}

// Get retrieves the record for the given key, or "" if absent.
func (ms *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.data[key], nil
}

// Set unconditionally upserts the record for the given key.
func (ms *MemoryStore) Set(ctx context.Context, key string, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.data[key] = value
	return nil
}

// Delete removes the key from storage.
func (ms *MemoryStore) Delete(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.data, key)
	return nil
}

// Ping checks if the storage is accessible.
func (ms *MemoryStore) Ping(ctx context.Context) error {
	// In-memory storage is always accessible
	return nil
}

// Close closes the storage connection.
func (ms *MemoryStore) Close() error {
	return nil
}
