package actor

import (
	"strings"
	"testing"

	"github.com/jwebster45206/quest-engine/pkg/state"
)

func TestNewPC(t *testing.T) {
	gs := state.NewGameState("Rin")
	gs = state.Reduce(gs, state.UpdateStats{HP: intPtr(14)})

	pc, err := NewPC(&gs.Player)
	if err != nil {
		t.Fatalf("NewPC() error = %v", err)
	}

	if pc.Actor.HP() != 14 {
		t.Errorf("HP() = %d, want 14", pc.Actor.HP())
	}
	if pc.Actor.MaxHP() != state.DefaultHP {
		t.Errorf("MaxHP() = %d, want %d", pc.Actor.MaxHP(), state.DefaultHP)
	}
	if pc.Actor.AC() != 12 {
		t.Errorf("AC() = %d, want 12", pc.Actor.AC())
	}

	tests := []struct {
		key      string
		expected int
	}{
		{"strength", 12},
		{"defense", 10},
		{"dexterity", 12},
		{"charisma", 10},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := pc.Attribute(tt.key); got != tt.expected {
				t.Errorf("Attribute(%q) = %d, want %d", tt.key, got, tt.expected)
			}
		})
	}

	if mods := pc.Modifiers(); mods["strength"] != 1 || mods["wisdom"] != 0 {
		t.Errorf("Modifiers() = %v", mods)
	}
	if cm := pc.CombatModifiers(); cm["Rusty Sword"] != 2 || cm["Leather Jerkin"] != 1 {
		t.Errorf("CombatModifiers() = %v", cm)
	}
}

func TestNewPC_Nil(t *testing.T) {
	if _, err := NewPC(nil); err == nil {
		t.Error("expected error for nil player")
	}
}

func TestEquipmentModifiers_IgnoresUnequipped(t *testing.T) {
	gs := state.Reduce(state.NewGameState("Rin"), state.UnequipItem{Name: "Rusty Sword"})
	mods := EquipmentModifiers(&gs.Player)
	if _, ok := mods["Rusty Sword"]; ok {
		t.Errorf("unequipped sword still contributes: %v", mods)
	}
}

func TestBuildPrompt(t *testing.T) {
	if got := BuildPrompt(nil); got != "" {
		t.Errorf("BuildPrompt(nil) = %q", got)
	}
	gs := state.NewGameState("Rin")
	pc, err := NewPC(&gs.Player)
	if err != nil {
		t.Fatal(err)
	}
	got := BuildPrompt(pc)
	for _, want := range []string{"Rin", "Level 1 Wanderer", "HP 20/20", "AC 12"} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildPrompt() = %q, missing %q", got, want)
		}
	}
}

func TestAttackRoll(t *testing.T) {
	gs := state.NewGameState("Rin")

	tests := []struct {
		name     string
		roll     int
		wantTot  int
		wantText string
	}{
		{"natural twenty", 20, 23, "CRITICAL SUCCESS"},
		{"natural one", 1, 4, "CRITICAL FAILURE"},
		{"plain roll", 11, 14, "= 14."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ar := NewAttackRoll(&gs.Player, tt.roll)
			if ar.Total() != tt.wantTot {
				t.Errorf("Total() = %d, want %d", ar.Total(), tt.wantTot)
			}
			text := ar.Describe("Bog Wight")
			if !strings.Contains(text, tt.wantText) || !strings.Contains(text, "Rusty Sword") {
				t.Errorf("Describe() = %q", text)
			}
		})
	}
}

func TestAttackRoll_Unarmed(t *testing.T) {
	gs := state.Reduce(state.NewGameState("Rin"), state.UnequipItem{Name: "Rusty Sword"})
	ar := NewAttackRoll(&gs.Player, 10)
	if ar.WeaponBonus != 0 || ar.Weapon != "bare hands" {
		t.Errorf("roll = %+v", ar)
	}
	if !strings.Contains(ar.Describe(""), "the enemy") {
		t.Errorf("Describe() = %q", ar.Describe(""))
	}
}
