package state

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ItemType classifies an inventory item.
type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemArmor      ItemType = "armor"
	ItemConsumable ItemType = "consumable"
	ItemKey        ItemType = "key"
	ItemArtifact   ItemType = "artifact"
	ItemTool       ItemType = "tool"
)

// ItemTypes lists every valid ItemType.
var ItemTypes = []ItemType{ItemWeapon, ItemArmor, ItemConsumable, ItemKey, ItemArtifact, ItemTool}

// EquipSlot is the body slot an item occupies when equipped.
type EquipSlot string

const (
	SlotHand      EquipSlot = "hand"
	SlotBody      EquipSlot = "body"
	SlotHead      EquipSlot = "head"
	SlotAccessory EquipSlot = "accessory"
	SlotNone      EquipSlot = "none"
)

// EquipSlots lists every valid EquipSlot.
var EquipSlots = []EquipSlot{SlotHand, SlotBody, SlotHead, SlotAccessory, SlotNone}

// Equippable reports whether the slot takes part in equip exclusivity.
func (s EquipSlot) Equippable() bool {
	return s != "" && s != SlotNone
}

// StatEffect is a signed bonus an item grants to a stat.
type StatEffect struct {
	Stat  string `json:"stat" yaml:"stat"`
	Value int    `json:"value" yaml:"value"`
}

// Item is a stack of identical things carried by the player.
// Name is the identity key for stacking, removal and equipping.
type Item struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Type        ItemType    `json:"type" yaml:"type"`
	Quantity    int         `json:"quantity" yaml:"quantity"`
	Weight      *float64    `json:"weight,omitempty" yaml:"weight,omitempty"`
	Slot        EquipSlot   `json:"slot,omitempty" yaml:"slot,omitempty"`
	Effect      *StatEffect `json:"effect,omitempty" yaml:"effect,omitempty"`
	Equipped    bool        `json:"equipped,omitempty" yaml:"equipped,omitempty"`
}

// UnitWeight returns the weight of a single item, zero when unset.
func (i Item) UnitWeight() float64 {
	if i.Weight == nil || *i.Weight < 0 {
		return 0
	}
	return *i.Weight
}

// CharacterStats are the player's numeric attributes.
type CharacterStats struct {
	HP           int `json:"hp" yaml:"hp"`
	MaxHP        int `json:"max_hp" yaml:"max_hp"`
	XP           int `json:"xp" yaml:"xp"`
	Level        int `json:"level" yaml:"level"`
	Strength     int `json:"strength" yaml:"strength"`
	Defense      int `json:"defense" yaml:"defense"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
	ArmorClass   int `json:"armor_class" yaml:"armor_class"`
	Supplies     int `json:"supplies" yaml:"supplies"`
}

// Attributes returns the core attributes keyed by lowercase name.
func (s CharacterStats) Attributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"defense":      s.Defense,
		"dexterity":    s.Dexterity,
		"constitution": s.Constitution,
		"intelligence": s.Intelligence,
		"wisdom":       s.Wisdom,
		"charisma":     s.Charisma,
	}
}

// QuestType is the tier of a quest.
type QuestType string

const (
	QuestMinor QuestType = "minor"
	QuestMajor QuestType = "major"
	QuestWorld QuestType = "world"
)

type Quest struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Type        QuestType `json:"type,omitempty" yaml:"type,omitempty"`
	Completed   bool      `json:"completed" yaml:"completed"`
}

type Companion struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Loyalty     int    `json:"loyalty,omitempty" yaml:"loyalty,omitempty"`
}

// Coordinates is a position on the unbounded exploration grid. (0,0) is spawn.
type Coordinates struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Key returns the WorldMap key for the position.
func (c Coordinates) Key() string {
	return CoordKey(c.X, c.Y)
}

// CoordKey forms the WorldMap key for x and y.
func CoordKey(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// Terrain is the kind of ground a tile is made of.
type Terrain string

const (
	TerrainPlains   Terrain = "PLAINS"
	TerrainForest   Terrain = "FOREST"
	TerrainMountain Terrain = "MOUNTAIN"
	TerrainDesert   Terrain = "DESERT"
	TerrainSwamp    Terrain = "SWAMP"
	TerrainWater    Terrain = "WATER"
	TerrainCave     Terrain = "CAVE"
	TerrainTown     Terrain = "TOWN"
	TerrainDungeon  Terrain = "DUNGEON"
	TerrainRuins    Terrain = "RUINS"
	TerrainUnknown  Terrain = "UNKNOWN"
)

// Terrains lists every valid Terrain.
var Terrains = []Terrain{
	TerrainPlains, TerrainForest, TerrainMountain, TerrainDesert, TerrainSwamp,
	TerrainWater, TerrainCave, TerrainTown, TerrainDungeon, TerrainRuins, TerrainUnknown,
}

// Direction is a compass step on the grid.
type Direction string

const (
	North Direction = "NORTH"
	South Direction = "SOUTH"
	East  Direction = "EAST"
	West  Direction = "WEST"
	None  Direction = "NONE"
)

// Directions lists every valid Direction.
var Directions = []Direction{North, South, East, West, None}

// Step returns the position one unit away from c in direction d.
// Unknown directions do not move.
func (d Direction) Step(c Coordinates) Coordinates {
	switch d {
	case North:
		c.Y++
	case South:
		c.Y--
	case East:
		c.X++
	case West:
		c.X--
	}
	return c
}

type Tile struct {
	Type    Terrain `json:"type" yaml:"type"`
	Visited bool    `json:"visited" yaml:"visited"`
}

// WorldMap holds discovered tiles keyed by CoordKey. Tiles are never deleted.
type WorldMap map[string]Tile

type World struct {
	LocationName        string    `json:"location_name" yaml:"location_name"`
	LocationDescription string    `json:"location_description" yaml:"location_description"`
	TimeOfDay           string    `json:"time_of_day" yaml:"time_of_day"`
	DangerLevel         int       `json:"danger_level" yaml:"danger_level"`
	NPCMemory           NPCMemory `json:"npc_memory" yaml:"npc_memory"`
	Map                 WorldMap  `json:"map" yaml:"map"`
}

// CombatState is either inactive or describes the current enemy.
type CombatState struct {
	IsActive         bool     `json:"is_active" yaml:"is_active"`
	EnemyName        string   `json:"enemy_name,omitempty" yaml:"enemy_name,omitempty"`
	EnemyHP          *int     `json:"enemy_hp,omitempty" yaml:"enemy_hp,omitempty"`
	EnemyMaxHP       *int     `json:"enemy_max_hp,omitempty" yaml:"enemy_max_hp,omitempty"`
	EnemyDescription string   `json:"enemy_description,omitempty" yaml:"enemy_description,omitempty"`
	EnemyType        string   `json:"enemy_type,omitempty" yaml:"enemy_type,omitempty"`
	RoundLog         []string `json:"round_log,omitempty" yaml:"round_log,omitempty"`
}

// Sender identifies who produced a log entry.
type Sender string

const (
	SenderPlayer   Sender = "player"
	SenderNarrator Sender = "narrator"
	SenderSystem   Sender = "system"
)

type LogEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Sender    Sender    `json:"sender" yaml:"sender"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewLogEntry stamps a log entry with a fresh id and the current time.
func NewLogEntry(sender Sender, content string) LogEntry {
	return LogEntry{
		ID:        uuid.NewString(),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	}
}

type Player struct {
	Name       string         `json:"name" yaml:"name"`
	Class      string         `json:"class" yaml:"class"`
	Stats      CharacterStats `json:"stats" yaml:"stats"`
	Reputation int            `json:"reputation" yaml:"reputation"`
	Gold       int            `json:"gold" yaml:"gold"`
	Inventory  []Item         `json:"inventory" yaml:"inventory"`
	Companions []Companion    `json:"companions" yaml:"companions"`
	Quests     []Quest        `json:"quests" yaml:"quests"`
	Journal    []string       `json:"journal" yaml:"journal"`
	Position   Coordinates    `json:"position" yaml:"position"`
}

// FindItem returns the index of the inventory entry with the given name, or -1.
func (p *Player) FindItem(name string) int {
	return slices.IndexFunc(p.Inventory, func(i Item) bool { return i.Name == name })
}

// EquippedIn returns the equipped item in slot, if any.
func (p *Player) EquippedIn(slot EquipSlot) (Item, bool) {
	for _, item := range p.Inventory {
		if item.Equipped && item.Slot == slot {
			return item, true
		}
	}
	return Item{}, false
}

// ActiveQuests returns the quests that are not yet completed.
func (p *Player) ActiveQuests() []Quest {
	var active []Quest
	for _, q := range p.Quests {
		if !q.Completed {
			active = append(active, q)
		}
	}
	return active
}

// GameState is the root of a single play session.
type GameState struct {
	ID         uuid.UUID   `json:"id" yaml:"id"`
	Player     Player      `json:"player" yaml:"player"`
	World      World       `json:"world" yaml:"world"`
	Combat     CombatState `json:"combat" yaml:"combat"`
	GameLog    []LogEntry  `json:"game_log" yaml:"game_log"`
	TurnCount  int         `json:"turn_count" yaml:"turn_count"`
	IsGameOver bool        `json:"is_game_over" yaml:"is_game_over"`
	CreatedAt  time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" yaml:"updated_at"`
}

// CurrentTile returns the tile under the player, UNKNOWN when undiscovered.
func (gs *GameState) CurrentTile() Tile {
	if tile, ok := gs.World.Map[gs.Player.Position.Key()]; ok {
		return tile
	}
	return Tile{Type: TerrainUnknown}
}

// RecentLog returns at most the last n log entries.
func (gs *GameState) RecentLog(n int) []LogEntry {
	if n <= 0 || len(gs.GameLog) <= n {
		return gs.GameLog
	}
	return gs.GameLog[len(gs.GameLog)-n:]
}

// Clone returns a deep copy. Reduce works on clones so callers' snapshots never change.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs

	c.Player.Inventory = make([]Item, len(gs.Player.Inventory))
	for i, item := range gs.Player.Inventory {
		if item.Weight != nil {
			w := *item.Weight
			item.Weight = &w
		}
		if item.Effect != nil {
			e := *item.Effect
			item.Effect = &e
		}
		c.Player.Inventory[i] = item
	}
	c.Player.Companions = slices.Clone(gs.Player.Companions)
	c.Player.Quests = slices.Clone(gs.Player.Quests)
	c.Player.Journal = slices.Clone(gs.Player.Journal)

	c.World.NPCMemory = maps.Clone(gs.World.NPCMemory)
	c.World.Map = maps.Clone(gs.World.Map)

	c.Combat.EnemyHP = cloneInt(gs.Combat.EnemyHP)
	c.Combat.EnemyMaxHP = cloneInt(gs.Combat.EnemyMaxHP)
	c.Combat.RoundLog = slices.Clone(gs.Combat.RoundLog)

	c.GameLog = slices.Clone(gs.GameLog)
	return &c
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Modifier returns the attribute modifier for a score: floor((score-10)/2).
func Modifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

const carryWeightPerStrength = 10

// OverloadRatio is the encumbrance ratio above which the player is overloaded.
const OverloadRatio = 1.0

// MaxCarryWeight is the most the player can carry before being overloaded.
func MaxCarryWeight(strength int) float64 {
	if strength < 0 {
		strength = 0
	}
	return float64(strength * carryWeightPerStrength)
}

// CarriedWeight sums weight times quantity over the inventory.
func (p *Player) CarriedWeight() float64 {
	var total float64
	for _, item := range p.Inventory {
		total += item.UnitWeight() * float64(item.Quantity)
	}
	return total
}

type Encumbrance struct {
	Current    float64 `json:"current"`
	Max        float64 `json:"max"`
	Ratio      float64 `json:"ratio"`
	Overloaded bool    `json:"overloaded"`
}

func (p *Player) Encumbrance() Encumbrance {
	e := Encumbrance{
		Current: p.CarriedWeight(),
		Max:     MaxCarryWeight(p.Stats.Strength),
	}
	if e.Max > 0 {
		e.Ratio = e.Current / e.Max
	} else if e.Current > 0 {
		e.Ratio = e.Current
	}
	e.Overloaded = e.Ratio > OverloadRatio
	return e
}
