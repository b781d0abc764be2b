package prompts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jwebster45206/quest-engine/pkg/chat"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

func TestBuildContext(t *testing.T) {
	gs := state.NewGameState("Rin")
	gs = state.Reduce(gs, state.UpdateNPCMemory{Memories: state.NPCMemory{"Tobin": "owes you", "Mara": "wary"}})
	gs = state.Reduce(gs, state.UpdateQuests{New: &state.Quest{ID: "q1", Title: "Find the mill"}})
	gs = state.Reduce(gs, state.UpdateQuests{New: &state.Quest{ID: "q2", Title: "Done already"}, CompletedID: "q2"})
	for i := 0; i < 8; i++ {
		gs = state.Reduce(gs, state.AddLog{Entry: state.NewLogEntry(state.SenderPlayer, "I wait.")})
	}
	gs = state.Reduce(gs, state.AddLog{Entry: state.NewLogEntry(state.SenderNarrator, "Time passes.")})

	c, err := BuildContext(gs, 0)
	if err != nil {
		t.Fatalf("BuildContext() error = %v", err)
	}

	if len(c.History) != DefaultHistoryLimit {
		t.Errorf("history length = %d, want %d", len(c.History), DefaultHistoryLimit)
	}
	if c.History[0] != "Rin: I wait." {
		t.Errorf("history[0] = %q", c.History[0])
	}
	if c.History[len(c.History)-1] != "Narrator: Time passes." {
		t.Errorf("last history line = %q", c.History[len(c.History)-1])
	}
	if len(c.World.KnownNPCs) != 2 || c.World.KnownNPCs[0] != "Mara" {
		t.Errorf("known npcs = %v, want sorted names", c.World.KnownNPCs)
	}
	if len(c.ActiveQuests) != 1 || c.ActiveQuests[0] != "Find the mill" {
		t.Errorf("active quests = %v", c.ActiveQuests)
	}
	if c.Player.Modifiers["strength"] != 1 || c.Player.XPNextLevel != 100 {
		t.Errorf("player = %+v", c.Player)
	}
	if c.Player.Encumbrance.Max != 120 || c.Player.Terrain != state.TerrainPlains {
		t.Errorf("encumbrance/terrain = %+v / %s", c.Player.Encumbrance, c.Player.Terrain)
	}
	if c.Combat != nil {
		t.Error("combat should be absent when inactive")
	}

	var equipped int
	for _, line := range c.Player.Inventory {
		if line.Equipped {
			equipped++
		}
	}
	if equipped != 2 {
		t.Errorf("equipped lines = %d, want 2", equipped)
	}
}

func TestBuildContext_Combat(t *testing.T) {
	gs := state.Reduce(state.NewGameState("Rin"), state.StartCombat{EnemyName: "Bog Wight", HP: 10, Description: "Wet."})
	gs = state.Reduce(gs, state.UpdateCombat{Damage: 6})

	c, err := BuildContext(gs, 3)
	if err != nil {
		t.Fatal(err)
	}
	if c.Combat == nil || c.Combat.Name != "Bog Wight" || c.Combat.HP != 4 || c.Combat.Condition != "bloodied" {
		t.Errorf("combat = %+v", c.Combat)
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"condition":"bloodied"`) || !strings.Contains(string(data), `"name":"Bog Wight"`) {
		t.Errorf("json = %s", data)
	}
}

func TestBuildContext_Nil(t *testing.T) {
	if _, err := BuildContext(nil, 5); err == nil {
		t.Error("expected error for nil state")
	}
}

func TestBuilder_Build(t *testing.T) {
	c, err := BuildContext(state.NewGameState("Rin"), 5)
	if err != nil {
		t.Fatal(err)
	}

	messages, err := New().
		WithDirective(BuildSystemPrompt("PG")).
		WithContext(c).
		WithAction("I read the signpost.").
		WithResponseFormat(true).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(messages))
	}
	if messages[0].Role != chat.ChatRoleSystem || !strings.Contains(messages[0].Content, "Response format") {
		t.Error("first message should be the directive with the response format")
	}
	if !strings.Contains(messages[1].Content, "```json") {
		t.Error("second message should carry the serialized state")
	}
	if messages[2].Role != chat.ChatRoleUser || messages[2].Content != "I read the signpost." {
		t.Errorf("third message = %+v", messages[2])
	}
	if messages[3].Content != UserPostPrompt {
		t.Errorf("final message = %q", messages[3].Content)
	}
}

func TestBuilder_Build_GameOver(t *testing.T) {
	gs := state.Reduce(state.NewGameState("Rin"), state.GameOver{})
	c, err := BuildContext(gs, 5)
	if err != nil {
		t.Fatal(err)
	}
	messages, err := New().WithContext(c).WithAction("I stand up.").Build()
	if err != nil {
		t.Fatal(err)
	}
	if messages[len(messages)-1].Content != GameEndSystemPrompt {
		t.Error("expected the game end prompt last")
	}
	if strings.Contains(messages[0].Content, "Response format") {
		t.Error("response format should be off by default")
	}
}

func TestBuilder_Build_Errors(t *testing.T) {
	c, _ := BuildContext(state.NewGameState("Rin"), 5)
	tests := []struct {
		name    string
		builder *Builder
	}{
		{"missing context", New().WithAction("go")},
		{"missing action", New().WithContext(c)},
		{"blank action", New().WithContext(c).WithAction("  ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.builder.Build(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "directive"},
		{Role: chat.ChatRoleSystem, Content: "state"},
		{Role: chat.ChatRoleUser, Content: "I run."},
		{Role: chat.ChatRoleSystem, Content: "reminder"},
	}
	system, user := Flatten(messages)
	if system != "directive" {
		t.Errorf("system = %q", system)
	}
	if user != "state\n\nPlayer action: I run.\n\nreminder" {
		t.Errorf("user = %q", user)
	}
}
