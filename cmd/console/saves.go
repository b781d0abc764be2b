package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/quest-engine/pkg/session"
)

var savesTimeout time.Duration

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage saved games",
	Long:  `List, inspect and delete games kept by the configured STORAGE_BACKEND.`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved games, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runSavesList,
}

var savesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved game as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesShow,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved game",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.PersistentFlags().DurationVar(&savesTimeout, "timeout", 10*time.Second, "Storage timeout")

	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesShowCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func savesRuntime(cmd *cobra.Command) (*runtime, context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), savesTimeout)
	rt, err := bootstrap(ctx, false)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	if err := rt.requireStorage(); err != nil {
		rt.Close()
		cancel()
		return nil, nil, nil, err
	}
	return rt, ctx, cancel, nil
}

func runSavesList(cmd *cobra.Command, _ []string) error {
	rt, ctx, cancel, err := savesRuntime(cmd)
	if err != nil {
		return err
	}
	defer cancel()
	defer rt.Close()

	games, err := rt.storage.ListGameStates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list saves: %w", err)
	}
	if len(games) == 0 {
		fmt.Println("No saved games.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tLEVEL\tLOCATION\tTURNS\tUPDATED")
	for _, gs := range games {
		s := session.Summarize(gs)
		name := s.Name
		if s.IsGameOver {
			name += " (ended)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
			s.ID, name, s.Level, s.Location, s.TurnCount, s.UpdatedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}

func runSavesShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid save id %q: %w", args[0], err)
	}
	rt, ctx, cancel, err := savesRuntime(cmd)
	if err != nil {
		return err
	}
	defer cancel()
	defer rt.Close()

	gs, err := rt.storage.LoadGameState(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load save: %w", err)
	}
	if gs == nil {
		return fmt.Errorf("%w: %s", session.ErrSaveNotFound, id)
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(gs)
}

func runSavesDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid save id %q: %w", args[0], err)
	}
	rt, ctx, cancel, err := savesRuntime(cmd)
	if err != nil {
		return err
	}
	defer cancel()
	defer rt.Close()

	if err := rt.storage.DeleteGameState(ctx, id); err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	rt.logger.Info("Deleted save", "game_state_id", id.String())
	fmt.Printf("Deleted %s\n", id)
	return nil
}
