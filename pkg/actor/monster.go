package actor

import "github.com/jwebster45206/quest-engine/pkg/state"

// Monster is a read-only snapshot of the enemy in the active encounter.
type Monster struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"max_hp"`
}

// MonsterFromCombat returns the current enemy, or nil when no combat is active.
// Missing hit points read as zero so callers never dereference nil.
func MonsterFromCombat(c state.CombatState) *Monster {
	if !c.IsActive {
		return nil
	}
	m := &Monster{
		Name:        c.EnemyName,
		Description: c.EnemyDescription,
		Type:        c.EnemyType,
	}
	if c.EnemyHP != nil {
		m.HP = *c.EnemyHP
	}
	if c.EnemyMaxHP != nil {
		m.MaxHP = *c.EnemyMaxHP
	}
	if m.MaxHP < m.HP {
		m.MaxHP = m.HP
	}
	return m
}

// IsDefeated returns true if the monster's HP is 0 or less.
func (m *Monster) IsDefeated() bool {
	return m.HP <= 0
}

// Condition describes remaining health in words for the narrator and the UI.
func (m *Monster) Condition() string {
	if m.IsDefeated() {
		return "defeated"
	}
	if m.MaxHP <= 0 {
		return "unknown"
	}
	ratio := float64(m.HP) / float64(m.MaxHP)
	switch {
	case ratio >= 1:
		return "unhurt"
	case ratio > 0.5:
		return "wounded"
	case ratio > 0.25:
		return "bloodied"
	default:
		return "near death"
	}
}
