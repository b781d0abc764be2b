package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jwebster45206/quest-engine/pkg/narrator"
	"github.com/jwebster45206/quest-engine/pkg/prompts"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

const validTurnJSON = `{
	"narrative": "The innkeeper slides a key across the counter.",
	"hp_change": 0,
	"xp_gained": 5,
	"supplies_consumed": 0,
	"items_added": [{"id": "room-key", "name": "Room Key", "description": "Brass.", "type": "key", "quantity": 1}],
	"items_removed_names": [],
	"suggested_actions": ["Go upstairs"],
	"movement_direction": "NONE",
	"current_terrain_type": "TOWN"
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRequest(t *testing.T) *narrator.Request {
	t.Helper()
	c, err := prompts.BuildContext(state.NewGameState("Rin"), prompts.DefaultHistoryLimit)
	if err != nil {
		t.Fatalf("BuildContext() error = %v", err)
	}
	return &narrator.Request{
		Action:    "ask the innkeeper for a room",
		Context:   c,
		Directive: prompts.BuildSystemPrompt(prompts.RatingPG),
	}
}
