// Package storage holds the concrete save stores behind storage.Storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/quest-engine/pkg/state"
	"github.com/jwebster45206/quest-engine/pkg/storage"
)

const (
	gameStateKeyPrefix = "gamestate:"
	gameStateIndexKey  = "gamestates"
)

// RedisStorage keeps each save as a JSON string under gamestate:<id> and
// tracks ids in a sorted set scored by update time.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisStorage{
		client: rdb,
		logger: logger,
	}
}

func gameStateKey(id uuid.UUID) string {
	return gameStateKeyPrefix + id.String()
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// GameState operations

func (r *RedisStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	// The caller's snapshot is shared; stamp a copy.
	saved := *gs
	saved.UpdatedAt = time.Now()

	data, err := json.Marshal(&saved)
	if err != nil {
		r.logger.Error("Failed to marshal gamestate", "game_state_id", id.String(), "error", err)
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameStateKey(id), data, 0)
		pipe.ZAdd(ctx, gameStateIndexKey, redis.Z{
			Score:  float64(saved.UpdatedAt.UnixNano()),
			Member: id.String(),
		})
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save gamestate", "game_state_id", id.String(), "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	data, err := r.client.Get(ctx, gameStateKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load gamestate", "game_state_id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		r.logger.Error("Failed to unmarshal gamestate", "game_state_id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}
	return &gs, nil
}

// ListGameStates reads the index newest first. Ids whose key has vanished
// are pruned from the index.
func (r *RedisStorage) ListGameStates(ctx context.Context) ([]*state.GameState, error) {
	ids, err := r.client.ZRevRange(ctx, gameStateIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list gamestates: %w", err)
	}
	games := make([]*state.GameState, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			r.logger.Warn("Skipping malformed gamestate id", "id", raw)
			continue
		}
		gs, err := r.LoadGameState(ctx, id)
		if err != nil {
			return nil, err
		}
		if gs == nil {
			r.client.ZRem(ctx, gameStateIndexKey, raw)
			continue
		}
		games = append(games, gs)
	}
	return games, nil
}

func (r *RedisStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, gameStateKey(id))
		pipe.ZRem(ctx, gameStateIndexKey, id.String())
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to delete gamestate", "game_state_id", id.String(), "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}
