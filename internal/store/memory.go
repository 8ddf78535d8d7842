package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryKVStore keeps values in process memory. It is safe for concurrent use.
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// NewMemoryKVStore returns an empty in-memory store.
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: make(map[string][]byte)}
}

var _ ClosableKVStore = (*MemoryKVStore)(nil)

// Get implements KVStore.Get.
func (s *MemoryKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

// Put implements KVStore.Put.
func (s *MemoryKVStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Close marks the store closed; later calls fail with ErrStoreClosed.
func (s *MemoryKVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
