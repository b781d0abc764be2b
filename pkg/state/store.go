package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Saver persists a snapshot keyed by the game's id.
type Saver interface {
	SaveGameState(ctx context.Context, id uuid.UUID, gs *GameState) error
}

// Store owns the current GameState. It runs every action through Reduce and
// persists each changed state except GAME_OVER. A nil Saver runs offline.
type Store struct {
	mu     sync.Mutex
	state  *GameState
	saver  Saver
	logger *slog.Logger
}

func NewStore(saver Saver, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{saver: saver, logger: logger}
}

// State returns the current snapshot. Callers must treat it as read-only.
func (s *Store) State() *GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies one action and reports whether the state changed.
// Save failures are logged and never returned; gameplay continues offline.
func (s *Store) Dispatch(ctx context.Context, action Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ctx, action)
}

// DispatchTo applies the action only while the game with the given id is
// still current. A turn started on one game never lands on another.
func (s *Store) DispatchTo(ctx context.Context, id uuid.UUID, action Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil || s.state.ID != id {
		return false
	}
	return s.dispatch(ctx, action)
}

func (s *Store) dispatch(ctx context.Context, action Action) bool {
	next := Reduce(s.state, action)
	if next == s.state {
		return false
	}
	s.state = next

	if s.saver == nil || next == nil || action.Type() == ActionGameOver {
		return true
	}
	if err := s.saver.SaveGameState(ctx, next.ID, next); err != nil {
		s.logger.Warn("Failed to save game state",
			"game_state_id", next.ID.String(),
			"action", string(action.Type()),
			"error", err)
	}
	return true
}
