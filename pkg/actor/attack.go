package actor

import (
	"fmt"

	"github.com/jwebster45206/quest-engine/pkg/state"
)

const (
	CriticalSuccess = 20
	CriticalFailure = 1
)

// AttackRoll is a player's d20 combat roll combined with gear and attribute bonuses.
// The narrator decides the outcome; the roll only colors the request.
type AttackRoll struct {
	Roll        int
	Weapon      string
	WeaponBonus int
	Modifier    int
}

// NewAttackRoll pairs a raw d20 roll with the equipped hand item and the
// strength modifier.
func NewAttackRoll(p *state.Player, roll int) AttackRoll {
	ar := AttackRoll{
		Roll:     roll,
		Weapon:   "bare hands",
		Modifier: state.Modifier(p.Stats.Strength),
	}
	if weapon, ok := p.EquippedIn(state.SlotHand); ok {
		ar.Weapon = weapon.Name
		if weapon.Effect != nil {
			ar.WeaponBonus = weapon.Effect.Value
		}
	}
	return ar
}

func (ar AttackRoll) Total() int {
	return ar.Roll + ar.WeaponBonus + ar.Modifier
}

func (ar AttackRoll) IsCriticalSuccess() bool { return ar.Roll == CriticalSuccess }

func (ar AttackRoll) IsCriticalFailure() bool { return ar.Roll == CriticalFailure }

// Describe renders the roll as the player's action text for the narrator.
func (ar AttackRoll) Describe(enemy string) string {
	if enemy == "" {
		enemy = "the enemy"
	}
	text := fmt.Sprintf("I attack %s with my %s. Roll: %d (d20) %+d weapon %+d strength = %d.",
		enemy, ar.Weapon, ar.Roll, ar.WeaponBonus, ar.Modifier, ar.Total())
	switch {
	case ar.IsCriticalSuccess():
		text += " CRITICAL SUCCESS!"
	case ar.IsCriticalFailure():
		text += " CRITICAL FAILURE!"
	}
	return text
}
