package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jwebster45206/quest-engine/pkg/state"
	"github.com/jwebster45206/quest-engine/pkg/storage"
)

const createGameStatesTable = `CREATE TABLE IF NOT EXISTS game_states (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStorage keeps one row per save with the state as a JSON blob.
type SQLiteStorage struct {
	sqlDB *sql.DB
}

var _ storage.Storage = (*SQLiteStorage)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStorage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(createGameStatesTable); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create game_states table: %w", err)
	}
	return &SQLiteStorage{sqlDB: sqlDB}, nil
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *SQLiteStorage) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	saved := *gs
	saved.UpdatedAt = time.Now()
	data, err := json.Marshal(&saved)
	if err != nil {
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO game_states (id, name, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data, updated_at = excluded.updated_at`,
		id.String(), saved.Player.Name, string(data), toMillis(saved.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	var data string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM game_states WHERE id = ?`, id.String()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}
	return decodeGameState([]byte(data))
}

func (s *SQLiteStorage) ListGameStates(ctx context.Context) ([]*state.GameState, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT data FROM game_states ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list gamestates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	games := make([]*state.GameState, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan gamestate: %w", err)
		}
		gs, err := decodeGameState([]byte(data))
		if err != nil {
			return nil, err
		}
		games = append(games, gs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list gamestates: %w", err)
	}
	return games, nil
}

func (s *SQLiteStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM game_states WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}

func decodeGameState(data []byte) (*state.GameState, error) {
	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}
	return &gs, nil
}
