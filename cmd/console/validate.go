package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	backend "github.com/jwebster45206/quest-engine/internal/storage"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

var validateCmd = &cobra.Command{
	Use:   "validate <save-file>",
	Short: "Check a YAML or JSON save file",
	Long: `Validate parses a save file and reports every rule the game state breaks,
such as HP above max HP or stacks with zero quantity. Files ending in .json are
read as JSON, anything else as YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	filename := args[0]
	fmt.Printf("Validating %s...\n", filename)

	gs, err := backend.ReadSaveFile(filename)
	if err != nil {
		return err
	}
	if gs == nil {
		return fmt.Errorf("file %s does not exist", filename)
	}

	if errs := state.CheckInvariants(gs); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		return fmt.Errorf("%d validation errors in %s", len(errs), filename)
	}

	fmt.Printf("Save for %s (level %d, turn %d) is valid!\n",
		gs.Player.Name, gs.Player.Stats.Level, gs.TurnCount)
	return nil
}
