// Package main is the terminal entry point for quest-engine
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/quest-engine/internal/config"
	"github.com/jwebster45206/quest-engine/internal/logger"
	backend "github.com/jwebster45206/quest-engine/internal/storage"
	"github.com/jwebster45206/quest-engine/pkg/storage"
)

var rootCmd = &cobra.Command{
	Use:   "quest-engine",
	Short: "An AI-narrated role-playing game for the terminal",
	Long: `quest-engine runs a turn-based fantasy adventure in your terminal. A language model
narrates each turn while the engine keeps score: stats, inventory, quests and the map.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(validateCmd)
}

// runtime is the configuration, logger and storage shared by every command.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	storage storage.Storage
	closers []io.Closer
}

// bootstrap loads config and opens storage. When logToFile is set logs go
// to cfg.LogFile so they do not draw over the terminal UI.
func bootstrap(ctx context.Context, logToFile bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	rt := &runtime{cfg: cfg}

	var out io.Writer = os.Stderr
	if logToFile {
		f, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, f)
		out = f
	}
	rt.logger = logger.Setup(cfg, out)

	st, err := backend.Open(ctx, cfg, rt.logger)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageBackend, err)
	}
	if st != nil {
		rt.storage = st
		rt.closers = append([]io.Closer{st}, rt.closers...)
	}
	rt.logger.Info("Storage ready", "backend", cfg.StorageBackend)
	return rt, nil
}

func (rt *runtime) Close() {
	for _, c := range rt.closers {
		_ = c.Close()
	}
	rt.closers = nil
}

// requireStorage fails commands that only make sense with saves.
func (rt *runtime) requireStorage() error {
	if rt.storage == nil {
		return fmt.Errorf("STORAGE_BACKEND is %q, there are no saves", rt.cfg.StorageBackend)
	}
	return nil
}
