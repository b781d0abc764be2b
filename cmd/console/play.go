package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/quest-engine/internal/services"
	"github.com/jwebster45206/quest-engine/pkg/prompts"
	"github.com/jwebster45206/quest-engine/pkg/session"
	"github.com/jwebster45206/quest-engine/pkg/textfilter"
	"github.com/jwebster45206/quest-engine/pkg/turn"
)

var (
	characterName string
	loadID        string
	continueLast  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume an adventure",
	Long: `Play opens the terminal UI. Without flags it shows the load screen with your
saved games and an option to start a new adventure.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&characterName, "name", "", "Start a new game with this character name")
	playCmd.Flags().StringVar(&loadID, "load", "", "Resume the saved game with this id")
	playCmd.Flags().BoolVar(&continueLast, "continue", false, "Resume the most recently played game")
	playCmd.MarkFlagsMutuallyExclusive("name", "load", "continue")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	rt, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	n, err := services.NewNarrator(ctx, rt.cfg, rt.logger)
	if err != nil {
		return fmt.Errorf("failed to create narrator: %w", err)
	}
	if c, ok := n.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	if rt.cfg.APIKey() == "" {
		rt.logger.Warn("No API key set for narrator", "provider", rt.cfg.NarratorProvider)
	}

	sess := session.New(rt.storage, n, rt.logger,
		turn.WithCooldown(rt.cfg.TurnCooldown),
		turn.WithNarratorTimeout(rt.cfg.NarratorTimeout),
		turn.WithDirective(prompts.BuildSystemPrompt(rt.cfg.ContentRating)),
		turn.WithContentFilter(rt.cfg.ContentFilter || textfilter.ShouldFilterContent(rt.cfg.ContentRating)),
	)

	switch {
	case characterName != "":
		if _, err := sess.StartNew(ctx, characterName); err != nil {
			return err
		}
	case loadID != "":
		id, err := uuid.Parse(loadID)
		if err != nil {
			return fmt.Errorf("invalid save id %q: %w", loadID, err)
		}
		if err := sess.LoadByID(ctx, id); err != nil {
			return err
		}
	case continueLast:
		saves, err := sess.SavedGames(ctx)
		if err != nil {
			return err
		}
		if len(saves) == 0 {
			return fmt.Errorf("no saved games to continue")
		}
		if err := sess.LoadByID(ctx, saves[0].ID); err != nil {
			return err
		}
	}

	p := tea.NewProgram(NewConsoleUI(ctx, sess),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
