package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

//go:generate mockgen -destination=mock/mock_storage.go -package=storagemock github.com/jwebster45206/quest-engine/pkg/storage Storage

// Storage persists game snapshots keyed by GameState.ID.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveGameState overwrites the snapshot stored under id.
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	// LoadGameState returns nil, nil when no snapshot exists for id.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	// ListGameStates returns every saved game, most recently updated first.
	ListGameStates(ctx context.Context) ([]*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error
}
