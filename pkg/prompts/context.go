package prompts

import (
	"fmt"
	"sort"

	"github.com/jwebster45206/quest-engine/pkg/actor"
	"github.com/jwebster45206/quest-engine/pkg/chat"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// DefaultHistoryLimit is the number of log lines sent as short-term memory.
const DefaultHistoryLimit = 5

// Context is the reduced game state sent to the narrator with each turn.
type Context struct {
	Player       PlayerContext  `json:"player"`
	World        WorldContext   `json:"world"`
	ActiveQuests []string       `json:"active_quests"`
	Combat       *CombatContext `json:"combat,omitempty"`
	History      []string       `json:"recent_history"`
	TurnCount    int            `json:"turn_count"`
	IsGameOver   bool           `json:"is_game_over"`
}

type PlayerContext struct {
	Summary     string            `json:"summary"`
	Name        string            `json:"name"`
	Class       string            `json:"class"`
	Level       int               `json:"level"`
	HP          int               `json:"hp"`
	MaxHP       int               `json:"max_hp"`
	XP          int               `json:"xp"`
	XPNextLevel int               `json:"xp_next_level"`
	ArmorClass  int               `json:"armor_class"`
	Supplies    int               `json:"supplies"`
	Gold        int               `json:"gold"`
	Reputation  int               `json:"reputation"`
	Attributes  map[string]int    `json:"attributes"`
	Modifiers   map[string]int    `json:"modifiers"`
	Inventory   []InventoryLine   `json:"inventory"`
	Encumbrance state.Encumbrance `json:"encumbrance"`
	Position    state.Coordinates `json:"position"`
	Terrain     state.Terrain     `json:"current_terrain"`
}

type InventoryLine struct {
	Name     string          `json:"name"`
	Type     state.ItemType  `json:"type,omitempty"`
	Quantity int             `json:"quantity"`
	Slot     state.EquipSlot `json:"slot,omitempty"`
	Effect   string          `json:"effect,omitempty"`
	Equipped bool            `json:"equipped,omitempty"`
}

type WorldContext struct {
	Location    string   `json:"location"`
	Description string   `json:"description"`
	TimeOfDay   string   `json:"time_of_day"`
	DangerLevel int      `json:"danger_level"`
	KnownNPCs   []string `json:"known_npcs"`
}

type CombatContext struct {
	actor.Monster
	Condition string `json:"condition"`
}

// BuildContext summarizes gs for the narrator. historyLimit <= 0 uses
// DefaultHistoryLimit.
func BuildContext(gs *state.GameState, historyLimit int) (*Context, error) {
	if gs == nil {
		return nil, fmt.Errorf("game state is nil")
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	pc, err := actor.NewPC(&gs.Player)
	if err != nil {
		return nil, fmt.Errorf("failed to build player actor: %w", err)
	}

	p := &gs.Player
	c := &Context{
		Player: PlayerContext{
			Summary:     actor.BuildPrompt(pc),
			Name:        p.Name,
			Class:       p.Class,
			Level:       p.Stats.Level,
			HP:          pc.Actor.HP(),
			MaxHP:       pc.Actor.MaxHP(),
			XP:          p.Stats.XP,
			XPNextLevel: state.XPThreshold(p.Stats.Level),
			ArmorClass:  pc.Actor.AC(),
			Supplies:    p.Stats.Supplies,
			Gold:        p.Gold,
			Reputation:  p.Reputation,
			Attributes:  pc.Attributes(),
			Modifiers:   pc.Modifiers(),
			Inventory:   inventoryLines(p.Inventory),
			Encumbrance: p.Encumbrance(),
			Position:    p.Position,
			Terrain:     gs.CurrentTile().Type,
		},
		World: WorldContext{
			Location:    gs.World.LocationName,
			Description: gs.World.LocationDescription,
			TimeOfDay:   gs.World.TimeOfDay,
			DangerLevel: gs.World.DangerLevel,
			KnownNPCs:   npcNames(gs.World.NPCMemory),
		},
		ActiveQuests: questTitles(p.ActiveQuests()),
		History:      historyLines(gs.RecentLog(historyLimit), p.Name),
		TurnCount:    gs.TurnCount,
		IsGameOver:   gs.IsGameOver,
	}
	if m := actor.MonsterFromCombat(gs.Combat); m != nil {
		c.Combat = &CombatContext{Monster: *m, Condition: m.Condition()}
	}
	return c, nil
}

func inventoryLines(items []state.Item) []InventoryLine {
	lines := make([]InventoryLine, 0, len(items))
	for _, item := range items {
		line := InventoryLine{
			Name:     item.Name,
			Type:     item.Type,
			Quantity: item.Quantity,
			Slot:     item.Slot,
			Equipped: item.Equipped,
		}
		if item.Effect != nil {
			line.Effect = fmt.Sprintf("%s %+d", item.Effect.Stat, item.Effect.Value)
		}
		lines = append(lines, line)
	}
	return lines
}

func npcNames(memory state.NPCMemory) []string {
	names := make([]string, 0, len(memory))
	for name := range memory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func questTitles(quests []state.Quest) []string {
	titles := make([]string, 0, len(quests))
	for _, q := range quests {
		titles = append(titles, q.Title)
	}
	return titles
}

func historyLines(entries []state.LogEntry, pcName string) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.Sender {
		case state.SenderPlayer:
			lines = append(lines, chat.FormatWithPCName(e.Content, pcName))
		case state.SenderNarrator:
			lines = append(lines, "Narrator: "+e.Content)
		default:
			lines = append(lines, "System: "+e.Content)
		}
	}
	return lines
}
