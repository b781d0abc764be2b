package state

import "fmt"

// Reduce applies a single action and returns the resulting state.
//
// Reduce never mutates gs. When the action changes nothing (unknown type,
// unmet precondition, or a gameplay action on a finished game) the input
// pointer itself is returned, which is how callers tell a no-op apart.
func Reduce(gs *GameState, action Action) *GameState {
	if action == nil {
		return gs
	}
	if gs == nil {
		if load, ok := action.(LoadState); ok {
			return mergeLoaded(load.State)
		}
		return gs
	}
	if gs.IsGameOver && !allowedAfterGameOver[action.Type()] {
		return gs
	}

	switch a := action.(type) {
	case LoadState:
		if a.State == nil {
			return gs
		}
		return mergeLoaded(a.State)

	case AddLog:
		next := gs.Clone()
		next.GameLog = append(next.GameLog, a.Entry)
		return next

	case UpdateStats:
		next := gs.Clone()
		applyStats(&next.Player.Stats, a)
		return next

	case UpdateGold:
		next := gs.Clone()
		next.Player.Gold = max(0, next.Player.Gold+a.Delta)
		return next

	case AddItem:
		if a.Item.Name == "" {
			return gs
		}
		return addItem(gs, a.Item)

	case RemoveItem:
		idx := gs.Player.FindItem(a.Name)
		if idx < 0 {
			return gs
		}
		next := gs.Clone()
		next.Player.Inventory[idx].Quantity--
		if next.Player.Inventory[idx].Quantity <= 0 {
			next.Player.Inventory = removeAt(next.Player.Inventory, idx)
		}
		return next

	case DropItem:
		idx := gs.Player.FindItem(a.Name)
		if idx < 0 {
			return gs
		}
		next := gs.Clone()
		next.Player.Inventory = removeAt(next.Player.Inventory, idx)
		next.GameLog = append(next.GameLog, NewLogEntry(SenderSystem, fmt.Sprintf("You dropped %s.", a.Name)))
		return next

	case EquipItem:
		idx := gs.Player.FindItem(a.Name)
		if idx < 0 || !gs.Player.Inventory[idx].Slot.Equippable() {
			return gs
		}
		if soleEquipped(gs.Player.Inventory, idx) {
			return gs
		}
		next := gs.Clone()
		slot := next.Player.Inventory[idx].Slot
		for i := range next.Player.Inventory {
			if i != idx && next.Player.Inventory[i].Slot == slot {
				next.Player.Inventory[i].Equipped = false
			}
		}
		next.Player.Inventory[idx].Equipped = true
		return next

	case UnequipItem:
		idx := gs.Player.FindItem(a.Name)
		if idx < 0 || !gs.Player.Inventory[idx].Equipped {
			return gs
		}
		next := gs.Clone()
		next.Player.Inventory[idx].Equipped = false
		return next

	case SetLocation:
		next := gs.Clone()
		next.World.LocationName = a.Name
		next.World.LocationDescription = a.Description
		return next

	case UpdateNPCMemory:
		if len(a.Memories) == 0 {
			return gs
		}
		next := gs.Clone()
		if next.World.NPCMemory == nil {
			next.World.NPCMemory = make(NPCMemory, len(a.Memories))
		}
		for name, memory := range a.Memories {
			next.World.NPCMemory[name] = memory
		}
		return next

	case UpdateReputation:
		next := gs.Clone()
		next.Player.Reputation += a.Delta
		return next

	case AddJournal:
		if a.Text == "" {
			return gs
		}
		next := gs.Clone()
		next.Player.Journal = append(next.Player.Journal, a.Text)
		return next

	case UpdateQuests:
		if a.New == nil && a.CompletedID == "" {
			return gs
		}
		next := gs.Clone()
		if a.New != nil {
			q := *a.New
			q.Completed = false
			next.Player.Quests = append(next.Player.Quests, q)
		}
		if a.CompletedID != "" {
			for i := range next.Player.Quests {
				if next.Player.Quests[i].ID == a.CompletedID {
					next.Player.Quests[i].Completed = true
				}
			}
		}
		return next

	case UpdateMap:
		next := gs.Clone()
		terrain := a.Terrain
		if terrain == "" {
			terrain = TerrainUnknown
		}
		pos := a.Direction.Step(next.Player.Position)
		next.Player.Position = pos
		if next.World.Map == nil {
			next.World.Map = make(WorldMap)
		}
		next.World.Map[pos.Key()] = Tile{Type: terrain, Visited: true}
		return next

	case StartCombat:
		next := gs.Clone()
		hp := max(0, a.HP)
		maxHP := hp
		next.Combat = CombatState{
			IsActive:         true,
			EnemyName:        a.EnemyName,
			EnemyHP:          &hp,
			EnemyMaxHP:       &maxHP,
			EnemyDescription: a.Description,
			EnemyType:        a.EnemyType,
			RoundLog:         []string{},
		}
		return next

	case UpdateCombat:
		if !gs.Combat.IsActive || gs.Combat.EnemyHP == nil {
			return gs
		}
		next := gs.Clone()
		hp := max(0, *next.Combat.EnemyHP-a.Damage)
		if next.Combat.EnemyMaxHP != nil {
			hp = min(hp, *next.Combat.EnemyMaxHP)
		}
		next.Combat.EnemyHP = &hp
		return next

	case EndCombat:
		next := gs.Clone()
		next.Combat = CombatState{}
		return next

	case GameOver:
		if gs.IsGameOver {
			return gs
		}
		next := gs.Clone()
		next.IsGameOver = true
		return next

	case AdvanceTurn:
		next := gs.Clone()
		next.TurnCount++
		return next

	case UpdateWorld:
		if a.TimeOfDay == "" && a.DangerLevel == nil {
			return gs
		}
		next := gs.Clone()
		if a.TimeOfDay != "" {
			next.World.TimeOfDay = a.TimeOfDay
		}
		if a.DangerLevel != nil {
			next.World.DangerLevel = max(0, *a.DangerLevel)
		}
		return next

	default:
		return gs
	}
}

// addItem stacks onto an existing entry with the same name, or appends a
// new unequipped entry.
func addItem(gs *GameState, item Item) *GameState {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}
	next := gs.Clone()
	if idx := next.Player.FindItem(item.Name); idx >= 0 {
		next.Player.Inventory[idx].Quantity += qty
		return next
	}
	entry := item
	entry.Quantity = qty
	entry.Equipped = false
	if item.Weight != nil {
		w := *item.Weight
		entry.Weight = &w
	}
	if item.Effect != nil {
		e := *item.Effect
		entry.Effect = &e
	}
	next.Player.Inventory = append(next.Player.Inventory, entry)
	return next
}

func removeAt(items []Item, idx int) []Item {
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

func applyStats(s *CharacterStats, u UpdateStats) {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.HP, u.HP)
	set(&s.MaxHP, u.MaxHP)
	set(&s.XP, u.XP)
	set(&s.Level, u.Level)
	set(&s.Strength, u.Strength)
	set(&s.Defense, u.Defense)
	set(&s.Dexterity, u.Dexterity)
	set(&s.Constitution, u.Constitution)
	set(&s.Intelligence, u.Intelligence)
	set(&s.Wisdom, u.Wisdom)
	set(&s.Charisma, u.Charisma)
	set(&s.ArmorClass, u.ArmorClass)
	set(&s.Supplies, u.Supplies)
}

// soleEquipped reports whether items[idx] is equipped and nothing else
// holds its slot.
func soleEquipped(items []Item, idx int) bool {
	if !items[idx].Equipped {
		return false
	}
	for i, item := range items {
		if i != idx && item.Equipped && item.Slot == items[idx].Slot {
			return false
		}
	}
	return true
}
