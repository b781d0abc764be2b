package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// MemoryStorage keeps snapshots in process memory. Used for offline play
// and in tests.
type MemoryStorage struct {
	mu         sync.RWMutex
	gamestates map[uuid.UUID]*state.GameState
	pingError  error
	saveError  error
}

// Ensure MemoryStorage implements Storage interface
var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		gamestates: make(map[uuid.UUID]*state.GameState),
	}
}

// SetPingError configures Ping to fail with err. A nil err restores success.
func (m *MemoryStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures SaveGameState to fail with err.
func (m *MemoryStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	saved := gs.Clone()
	saved.UpdatedAt = time.Now()
	m.gamestates[id] = saved
	return nil
}

func (m *MemoryStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gs, exists := m.gamestates[id]
	if !exists {
		return nil, nil // Return nil for not found
	}
	return gs.Clone(), nil
}

func (m *MemoryStorage) ListGameStates(ctx context.Context) ([]*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*state.GameState, 0, len(m.gamestates))
	for _, gs := range m.gamestates {
		result = append(result, gs.Clone())
	}
	SortByRecent(result)
	return result, nil
}

func (m *MemoryStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gamestates, id)
	return nil
}

// SortByRecent orders saves by UpdatedAt, newest first.
func SortByRecent(games []*state.GameState) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].UpdatedAt.After(games[j].UpdatedAt)
	})
}
