package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/emory/internal/config"
	"github.com/phrazzld/emory/internal/platform/bolt"
	"github.com/phrazzld/emory/internal/platform/sqlite"
	"github.com/phrazzld/emory/internal/store"
)

// openStore opens the key-value store named by cfg.Driver.
func openStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.ClosableKVStore, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("using in-memory storage, the ranking will not survive restarts")
		return store.NewMemoryKVStore(), nil
	case "sqlite":
		kv, err := sqlite.Open(ctx, cfg.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("sqlite storage opened")
		return kv, nil
	case "bolt":
		kv, err := bolt.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		logger.Info("bolt storage opened")
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
