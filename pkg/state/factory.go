package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPlayerName = "Traveler"
	DefaultClass      = "Wanderer"
	DefaultHP         = 20
	DefaultSupplies   = 5
	DefaultGold       = 10
	DefaultLocation   = "The Crossroads"
	DefaultTimeOfDay  = "Dawn"
	DefaultDanger     = 1

	defaultLocationDescription = "A weathered signpost leans where four dirt roads meet. Wind moves through the tall grass, and far off a crow calls."
)

const (
	xpPerLevel   = 100
	LevelUpMaxHP = 5
)

// XPThreshold is the total xp at which a character of the given level advances.
func XPThreshold(level int) int {
	return level * xpPerLevel
}

// baseArmorClass is the armor class of an unarmored character with no dexterity bonus.
const baseArmorClass = 10

// ArmorClass derives armor class from dexterity and equipped defense bonuses.
func ArmorClass(p *Player) int {
	ac := baseArmorClass + Modifier(p.Stats.Dexterity)
	for _, item := range p.Inventory {
		if item.Equipped && item.Effect != nil && strings.EqualFold(item.Effect.Stat, "defense") {
			ac += item.Effect.Value
		}
	}
	return ac
}

func weight(w float64) *float64 { return &w }

// NewGameState creates the starting state for a new character.
func NewGameState(characterName string) *GameState {
	name := strings.TrimSpace(characterName)
	if name == "" {
		name = DefaultPlayerName
	}
	now := time.Now()

	gs := &GameState{
		ID: uuid.New(),
		Player: Player{
			Name:  name,
			Class: DefaultClass,
			Stats: CharacterStats{
				HP:           DefaultHP,
				MaxHP:        DefaultHP,
				XP:           0,
				Level:        1,
				Strength:     12,
				Defense:      10,
				Dexterity:    12,
				Constitution: 12,
				Intelligence: 10,
				Wisdom:       10,
				Charisma:     10,
				Supplies:     DefaultSupplies,
			},
			Gold: DefaultGold,
			Inventory: []Item{
				{
					ID:          "starter-sword",
					Name:        "Rusty Sword",
					Description: "Pitted along the edge but still sharp enough.",
					Type:        ItemWeapon,
					Quantity:    1,
					Weight:      weight(3),
					Slot:        SlotHand,
					Effect:      &StatEffect{Stat: "strength", Value: 2},
					Equipped:    true,
				},
				{
					ID:          "starter-jerkin",
					Name:        "Leather Jerkin",
					Description: "Stiff boiled leather, patched at the shoulder.",
					Type:        ItemArmor,
					Quantity:    1,
					Weight:      weight(5),
					Slot:        SlotBody,
					Effect:      &StatEffect{Stat: "defense", Value: 1},
					Equipped:    true,
				},
				{
					ID:          "starter-rope",
					Name:        "Hemp Rope",
					Description: "Fifty feet of coarse rope.",
					Type:        ItemTool,
					Quantity:    1,
					Weight:      weight(2),
				},
			},
			Companions: []Companion{},
			Quests:     []Quest{},
			Journal:    []string{},
		},
		World: World{
			LocationName:        DefaultLocation,
			LocationDescription: defaultLocationDescription,
			TimeOfDay:           DefaultTimeOfDay,
			DangerLevel:         DefaultDanger,
			NPCMemory:           NPCMemory{},
			Map: WorldMap{
				CoordKey(0, 0): {Type: TerrainPlains, Visited: true},
			},
		},
		GameLog: []LogEntry{
			NewLogEntry(SenderSystem, fmt.Sprintf("Welcome, %s. Your journey begins at %s.", name, DefaultLocation)),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	gs.Player.Stats.ArmorClass = ArmorClass(&gs.Player)
	return gs
}

// mergeLoaded overlays a saved or partial state onto fresh defaults so
// that fields missing from older saves come back with sane values.
func mergeLoaded(payload *GameState) *GameState {
	if payload == nil {
		return nil
	}
	base := NewGameState(payload.Player.Name)
	gs := payload.Clone()

	if gs.ID == uuid.Nil {
		gs.ID = base.ID
	}
	if gs.CreatedAt.IsZero() {
		gs.CreatedAt = base.CreatedAt
	}
	if gs.UpdatedAt.IsZero() {
		gs.UpdatedAt = gs.CreatedAt
	}

	p := &gs.Player
	p.Name = base.Player.Name
	if p.Class == "" {
		p.Class = base.Player.Class
	}
	if p.Stats == (CharacterStats{}) {
		p.Stats = base.Player.Stats
	} else {
		mergeStats(&p.Stats, base.Player.Stats)
	}
	if p.Gold < 0 {
		p.Gold = 0
	}
	if p.Inventory == nil {
		p.Inventory = base.Player.Inventory
	} else {
		p.Inventory = dropEmptyStacks(p.Inventory)
	}
	if p.Companions == nil {
		p.Companions = []Companion{}
	}
	if p.Quests == nil {
		p.Quests = []Quest{}
	}
	if p.Journal == nil {
		p.Journal = []string{}
	}

	w := &gs.World
	if w.LocationName == "" {
		w.LocationName = base.World.LocationName
		w.LocationDescription = base.World.LocationDescription
	}
	if w.TimeOfDay == "" {
		w.TimeOfDay = base.World.TimeOfDay
	}
	if w.DangerLevel < 0 {
		w.DangerLevel = 0
	}
	if w.NPCMemory == nil {
		w.NPCMemory = NPCMemory{}
	}
	if len(w.Map) == 0 {
		w.Map = WorldMap{p.Position.Key(): {Type: TerrainPlains, Visited: true}}
	}

	if !gs.Combat.IsActive {
		gs.Combat = CombatState{}
	} else {
		normalizeCombat(&gs.Combat)
	}
	if gs.GameLog == nil {
		gs.GameLog = []LogEntry{}
	}
	if gs.TurnCount < 0 {
		gs.TurnCount = 0
	}
	return gs
}

func mergeStats(s *CharacterStats, def CharacterStats) {
	if s.MaxHP < 1 {
		s.MaxHP = def.MaxHP
	}
	s.HP = min(max(s.HP, 0), s.MaxHP)
	if s.Level < 1 {
		s.Level = 1
	}
	if s.XP < 0 {
		s.XP = 0
	}
	if s.Supplies < 0 {
		s.Supplies = 0
	}
	fill := func(v *int, d int) {
		if *v <= 0 {
			*v = d
		}
	}
	fill(&s.Strength, def.Strength)
	fill(&s.Defense, def.Defense)
	fill(&s.Dexterity, def.Dexterity)
	fill(&s.Constitution, def.Constitution)
	fill(&s.Intelligence, def.Intelligence)
	fill(&s.Wisdom, def.Wisdom)
	fill(&s.Charisma, def.Charisma)
	fill(&s.ArmorClass, def.ArmorClass)
}

func dropEmptyStacks(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Quantity >= 1 {
			out = append(out, item)
		}
	}
	return out
}

func normalizeCombat(c *CombatState) {
	if c.EnemyHP == nil {
		return
	}
	if *c.EnemyHP < 0 {
		*c.EnemyHP = 0
	}
	if c.EnemyMaxHP == nil || *c.EnemyMaxHP < *c.EnemyHP {
		c.EnemyMaxHP = cloneInt(c.EnemyHP)
	}
}
