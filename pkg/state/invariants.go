package state

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNilState = errors.New("game state is nil")
)

// CheckInvariants reports every structural rule the state currently breaks.
// A state produced by NewGameState and Reduce with resolver-clamped stats
// returns no errors.
func CheckInvariants(gs *GameState) []error {
	if gs == nil {
		return []error{ErrNilState}
	}
	var errs []error
	s := gs.Player.Stats

	if s.MaxHP < 1 {
		errs = append(errs, fmt.Errorf("max_hp must be at least 1, got %d", s.MaxHP))
	}
	if s.HP < 0 || s.HP > s.MaxHP {
		errs = append(errs, fmt.Errorf("hp %d outside 0..%d", s.HP, s.MaxHP))
	}
	if s.Supplies < 0 {
		errs = append(errs, fmt.Errorf("supplies must not be negative, got %d", s.Supplies))
	}
	if s.XP < 0 {
		errs = append(errs, fmt.Errorf("xp must not be negative, got %d", s.XP))
	}
	if s.Level < 1 {
		errs = append(errs, fmt.Errorf("level must be at least 1, got %d", s.Level))
	}
	if gs.Player.Gold < 0 {
		errs = append(errs, fmt.Errorf("gold must not be negative, got %d", gs.Player.Gold))
	}

	equipped := make(map[EquipSlot]string)
	for _, item := range gs.Player.Inventory {
		if item.Quantity < 1 {
			errs = append(errs, fmt.Errorf("item %q has quantity %d", item.Name, item.Quantity))
		}
		if item.Weight != nil && *item.Weight < 0 {
			errs = append(errs, fmt.Errorf("item %q has negative weight", item.Name))
		}
		if item.Type != "" && !slices.Contains(ItemTypes, item.Type) {
			errs = append(errs, fmt.Errorf("item %q has unknown type %q", item.Name, item.Type))
		}
		if !item.Equipped || !item.Slot.Equippable() {
			continue
		}
		if other, ok := equipped[item.Slot]; ok {
			errs = append(errs, fmt.Errorf("slot %s has both %q and %q equipped", item.Slot, other, item.Name))
			continue
		}
		equipped[item.Slot] = item.Name
	}

	for key, tile := range gs.World.Map {
		if !slices.Contains(Terrains, tile.Type) {
			errs = append(errs, fmt.Errorf("tile %s has unknown terrain %q", key, tile.Type))
		}
	}

	c := gs.Combat
	if c.IsActive {
		if c.EnemyHP != nil && *c.EnemyHP < 0 {
			errs = append(errs, fmt.Errorf("enemy hp must not be negative, got %d", *c.EnemyHP))
		}
		if c.EnemyHP != nil && c.EnemyMaxHP != nil && *c.EnemyHP > *c.EnemyMaxHP {
			errs = append(errs, fmt.Errorf("enemy hp %d exceeds max %d", *c.EnemyHP, *c.EnemyMaxHP))
		}
	} else if c.EnemyName != "" || c.EnemyHP != nil {
		errs = append(errs, errors.New("inactive combat still carries enemy fields"))
	}
	return errs
}
