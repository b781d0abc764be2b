package actor

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// CoreAttributes are the ability scores exposed to the narrator, in display order.
var CoreAttributes = []string{
	"strength", "defense", "dexterity", "constitution", "intelligence", "wisdom", "charisma",
}

// PC is the runtime view of the player character
type PC struct {
	Name  string
	Class string
	Level int
	Actor *d20.Actor // Built at runtime from the player's stats and gear
}

// NewPC builds a d20.Actor from the player's stats and equipped items.
// Equipped stat effects become combat modifiers keyed by item name.
func NewPC(p *state.Player) (*PC, error) {
	if p == nil {
		return nil, fmt.Errorf("player cannot be nil")
	}

	mods := EquipmentModifiers(p)
	maxHP := max(p.Stats.MaxHP, 1)

	a, err := d20.NewActor(p.Name).
		WithHP(maxHP).
		WithAC(state.ArmorClass(p)).
		WithAttributes(p.Stats.Attributes()).
		WithCombatModifiers(mods).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	// Set current HP if different from max
	if p.Stats.HP != maxHP && p.Stats.HP > 0 {
		if err := a.SetHP(p.Stats.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}

	return &PC{
		Name:  p.Name,
		Class: p.Class,
		Level: p.Stats.Level,
		Actor: a,
	}, nil
}

// EquipmentModifiers returns the stat effects of equipped items keyed by item name.
func EquipmentModifiers(p *state.Player) map[string]int {
	mods := make(map[string]int)
	for _, item := range p.Inventory {
		if item.Equipped && item.Effect != nil && item.Effect.Value != 0 {
			mods[item.Name] = item.Effect.Value
		}
	}
	return mods
}

// Attribute returns the raw score for key, zero when the actor lacks it.
func (pc *PC) Attribute(key string) int {
	if v, ok := pc.Actor.Attribute(key); ok {
		return v
	}
	return 0
}

// Modifiers returns the attribute modifier for every core attribute.
func (pc *PC) Modifiers() map[string]int {
	out := make(map[string]int, len(CoreAttributes))
	for _, key := range CoreAttributes {
		out[key] = state.Modifier(pc.Attribute(key))
	}
	return out
}

// CombatModifiers returns the actor's combat modifiers keyed by reason.
func (pc *PC) CombatModifiers() map[string]int {
	out := make(map[string]int)
	for _, mod := range pc.Actor.GetCombatModifiers() {
		out[mod.Reason] = mod.Value
	}
	return out
}

// Attributes returns a copy of every attribute score.
func (pc *PC) Attributes() map[string]int {
	out := make(map[string]int, len(CoreAttributes))
	for _, key := range CoreAttributes {
		out[key] = pc.Attribute(key)
	}
	return out
}

// BuildPrompt summarizes the character for the narrator's context.
//
// Example output:
// Rin, Level 2 Wanderer. HP 14/25, AC 12.
func BuildPrompt(pc *PC) string {
	if pc == nil {
		return ""
	}
	sb := strings.Builder{}
	sb.WriteString(pc.Name)
	if pc.Level > 0 || pc.Class != "" {
		parts := []string{}
		if pc.Level > 0 {
			parts = append(parts, fmt.Sprintf("Level %d", pc.Level))
		}
		if pc.Class != "" {
			parts = append(parts, pc.Class)
		}
		sb.WriteString(", " + strings.Join(parts, " "))
	}
	sb.WriteString(fmt.Sprintf(". HP %d/%d, AC %d.", pc.Actor.HP(), pc.Actor.MaxHP(), pc.Actor.AC()))
	return sb.String()
}
