package store

import (
	"context"
	"io"
)

// KVStore is a minimal persistent key-value store, the Go counterpart of a
// browser's local storage. Values are opaque bytes; callers own the encoding.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}

// ClosableKVStore is a KVStore backed by a resource that must be released.
type ClosableKVStore interface {
	KVStore
	io.Closer
}
