package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/quest-engine/pkg/state"
	"github.com/jwebster45206/quest-engine/pkg/storage"
)

const saveFileExt = ".yaml"

// FileStorage writes each save as <id>.yaml in a directory, so saves can be
// read and edited by hand.
type FileStorage struct {
	dir    string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates dir if it does not exist.
func NewFileStorage(dir string, logger *slog.Logger) (*FileStorage, error) {
	if dir == "" {
		dir = "./saves"
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FileStorage{dir: dir, logger: logger}, nil
}

func (f *FileStorage) path(id uuid.UUID) string {
	return filepath.Join(f.dir, id.String()+saveFileExt)
}

func (f *FileStorage) Ping(ctx context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("save path %s is not a directory", f.dir)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

// SaveGameState writes to a temp file and renames it into place.
func (f *FileStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	saved := *gs
	saved.UpdatedAt = time.Now()
	data, err := yaml.Marshal(&saved)
	if err != nil {
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	tmp := f.path(id) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write gamestate: %w", err)
	}
	if err := os.Rename(tmp, f.path(id)); err != nil {
		return fmt.Errorf("failed to write gamestate: %w", err)
	}
	return nil
}

func (f *FileStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ReadSaveFile(f.path(id))
}

// ListGameStates skips files that cannot be parsed.
func (f *FileStorage) ListGameStates(ctx context.Context) ([]*state.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	games := make([]*state.GameState, 0)
	err := filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != saveFileExt {
			return nil
		}
		if _, perr := uuid.Parse(strings.TrimSuffix(d.Name(), saveFileExt)); perr != nil {
			return nil
		}
		gs, rerr := ReadSaveFile(path)
		if rerr != nil {
			f.logger.Warn("Failed to read save file", "path", path, "error", rerr)
			return nil
		}
		if gs != nil {
			games = append(games, gs)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list gamestates: %w", err)
	}
	storage.SortByRecent(games)
	return games, nil
}

func (f *FileStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}

// ReadSaveFile parses a YAML or JSON save. A missing file returns nil, nil.
func ReadSaveFile(path string) (*state.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return decodeGameState(data)
	}
	var gs state.GameState
	if err := yaml.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save file: %w", err)
	}
	return &gs, nil
}
