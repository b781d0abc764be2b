package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/quest-engine/internal/config"
	"github.com/jwebster45206/quest-engine/pkg/storage"
)

const (
	redisConnectRetries = 5
	redisRetryDelay     = time.Second
)

// Open returns the store selected by cfg.StorageBackend. BackendNone
// returns nil, which plays offline.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendNone:
		return nil, nil
	case config.BackendMemory:
		return storage.NewMemoryStorage(), nil
	case config.BackendFile:
		f, err := NewFileStorage(cfg.SaveDir, logger)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.BackendSQLite:
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendRedis:
		r := NewRedisStorage(cfg.RedisURL, logger)
		if err := r.WaitForConnection(ctx, redisConnectRetries, redisRetryDelay); err != nil {
			_ = r.Close()
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
