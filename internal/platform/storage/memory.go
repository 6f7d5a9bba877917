// Copyright (c) 2026 Harborview Hotel Group. All rights reserved.
// Author: dev@harborview.app

package storage

import (
	stdctx "context"
	"sync"
)

// # In-Memory Backend

// MemoryStore is a volatile [Store] used by tests and as a safe fallback when
// no durable backend is configured. Contents vanish with the process.
type MemoryStore struct {
	mutex sync.RWMutex
	data  map[string][]byte
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

// Get returns the document stored under key, or [ErrKeyNotFound].
func (store *MemoryStore) Get(_ stdctx.Context, key string) ([]byte, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	raw, ok := store.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	// Defensive copy: callers must not be able to mutate stored state.
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// Set replaces the document stored under key.
func (store *MemoryStore) Set(_ stdctx.Context, key string, value []byte) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	store.data[key] = stored
	return nil
}

// Delete removes the document stored under key. Idempotent.
func (store *MemoryStore) Delete(_ stdctx.Context, key string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	delete(store.data, key)
	return nil
}
