// Package bolt provides a BoltDB-backed key-value store: one file, one
// bucket, values stored verbatim.
package bolt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/phrazzld/emory/internal/store"
	"go.etcd.io/bbolt"
)

const entriesBucket = "entries"

// KVStore implements store.KVStore on a single bbolt bucket.
type KVStore struct {
	db *bbolt.DB
}

var _ store.ClosableKVStore = (*KVStore)(nil)

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*KVStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(entriesBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", entriesBucket, err)
	}

	return &KVStore{db: db}, nil
}

// Close closes the underlying BoltDB database.
func (s *KVStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get implements store.KVStore.Get.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, store.ErrInvalidKey
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(entriesBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", entriesBucket)
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return fmt.Errorf("%w: %s", store.ErrNotFound, key)
		}
		// raw is only valid for the life of the transaction.
		value = append([]byte{}, raw...)
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, store.NewStoreError("kv_entry", "get", "failed to read value", err)
	}
	return value, nil
}

// Put implements store.KVStore.Put.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return store.ErrInvalidKey
	}
	if value == nil {
		value = []byte{}
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(entriesBucket))
		if bucket == nil {
			return fmt.Errorf("%s bucket is missing", entriesBucket)
		}
		return bucket.Put([]byte(key), value)
	})
	if err != nil {
		return store.NewStoreError("kv_entry", "put", "failed to write value", err)
	}
	return nil
}
