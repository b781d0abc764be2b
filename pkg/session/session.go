// Package session is the surface a front end talks to. It ties a Store,
// a turn Resolver and an optional Storage together for one player.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/quest-engine/pkg/narrator"
	"github.com/jwebster45206/quest-engine/pkg/state"
	"github.com/jwebster45206/quest-engine/pkg/storage"
	"github.com/jwebster45206/quest-engine/pkg/turn"
)

// NothingHappens answers a shortcut command that changed nothing.
const NothingHappens = "Nothing happens."

var (
	ErrOffline      = errors.New("no storage configured")
	ErrSaveNotFound = errors.New("save not found")
)

// SaveSummary is one row of the load screen.
type SaveSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Class      string    `json:"class"`
	Level      int       `json:"level"`
	Location   string    `json:"location"`
	TurnCount  int       `json:"turn_count"`
	IsGameOver bool      `json:"is_game_over"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func Summarize(gs *state.GameState) SaveSummary {
	return SaveSummary{
		ID:         gs.ID,
		Name:       gs.Player.Name,
		Class:      gs.Player.Class,
		Level:      gs.Player.Stats.Level,
		Location:   gs.World.LocationName,
		TurnCount:  gs.TurnCount,
		IsGameOver: gs.IsGameOver,
		UpdatedAt:  gs.UpdatedAt,
	}
}

type Session struct {
	store    *state.Store
	storage  storage.Storage
	resolver *turn.Resolver
	logger   *slog.Logger
}

// New builds a session. A nil storage plays offline: nothing is saved and
// the load screen is empty.
func New(st storage.Storage, n narrator.Narrator, logger *slog.Logger, opts ...turn.Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	var saver state.Saver
	if st != nil {
		saver = st
	}
	store := state.NewStore(saver, logger)
	opts = append([]turn.Option{turn.WithLogger(logger)}, opts...)
	return &Session{
		store:    store,
		storage:  st,
		resolver: turn.New(store, n, opts...),
		logger:   logger,
	}
}

// StartNew begins a fresh game for the named character. It fails with
// turn.ErrTurnInFlight while a turn is waiting on the narrator.
func (s *Session) StartNew(ctx context.Context, name string) (*state.GameState, error) {
	if err := s.resolver.Restart(ctx, state.NewGameState(name)); err != nil {
		return nil, err
	}
	gs := s.store.State()
	s.logger.Info("Started new game", "game_state_id", gs.ID.String(), "name", gs.Player.Name)
	return gs, nil
}

// Load replaces the current game with gs, filling any missing fields.
func (s *Session) Load(ctx context.Context, gs *state.GameState) error {
	if gs == nil {
		return fmt.Errorf("cannot load nil game state")
	}
	if err := s.resolver.Restart(ctx, gs); err != nil {
		return fmt.Errorf("failed to load game state: %w", err)
	}
	return nil
}

func (s *Session) LoadByID(ctx context.Context, id uuid.UUID) error {
	if s.storage == nil {
		return ErrOffline
	}
	gs, err := s.storage.LoadGameState(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load game state: %w", err)
	}
	if gs == nil {
		return fmt.Errorf("%w: %s", ErrSaveNotFound, id)
	}
	return s.Load(ctx, gs)
}

// SavedGames lists saves, most recent first. Offline sessions have none.
func (s *Session) SavedGames(ctx context.Context) ([]SaveSummary, error) {
	if s.storage == nil {
		return []SaveSummary{}, nil
	}
	games, err := s.storage.ListGameStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list game states: %w", err)
	}
	out := make([]SaveSummary, 0, len(games))
	for _, gs := range games {
		out = append(out, Summarize(gs))
	}
	return out, nil
}

func (s *Session) DeleteSave(ctx context.Context, id uuid.UUID) error {
	if s.storage == nil {
		return ErrOffline
	}
	if err := s.storage.DeleteGameState(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}
	return nil
}

// SubmitAction handles slash commands locally and sends everything else to
// the narrator. The returned notice is for display only and is not logged.
func (s *Session) SubmitAction(ctx context.Context, text string) (string, error) {
	gs := s.store.State()
	if gs == nil {
		return "", turn.ErrNoGame
	}
	if result := gs.TryHandleCommand(text); result.Handled {
		if result.Action != nil && !s.store.Dispatch(ctx, result.Action) {
			return NothingHappens, nil
		}
		return result.Message, nil
	}
	return "", s.resolver.SubmitAction(ctx, text)
}

func (s *Session) SubmitCombatRoll(ctx context.Context) error {
	return s.resolver.SubmitCombatRoll(ctx)
}

// Equip, Unequip and Drop act on inventory directly, without a narrator
// turn. They report whether anything changed.
func (s *Session) Equip(ctx context.Context, name string) bool {
	return s.store.Dispatch(ctx, state.EquipItem{Name: name})
}

func (s *Session) Unequip(ctx context.Context, name string) bool {
	return s.store.Dispatch(ctx, state.UnequipItem{Name: name})
}

func (s *Session) Drop(ctx context.Context, name string) bool {
	return s.store.Dispatch(ctx, state.DropItem{Name: name})
}

// State returns the current snapshot. Do not modify it.
func (s *Session) State() *state.GameState { return s.store.State() }

func (s *Session) InFlight() bool { return s.resolver.InFlight() }

func (s *Session) CoolingDown() bool { return s.resolver.CoolingDown() }

func (s *Session) Suggestions() []string { return s.resolver.Suggestions() }

// Online reports whether saves are persisted.
func (s *Session) Online() bool { return s.storage != nil }
