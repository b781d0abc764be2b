package state

// ActionType names a reducer transition.
type ActionType string

const (
	ActionLoadState        ActionType = "LOAD_STATE"
	ActionAddLog           ActionType = "ADD_LOG"
	ActionUpdateStats      ActionType = "UPDATE_STATS"
	ActionUpdateGold       ActionType = "UPDATE_GOLD"
	ActionAddItem          ActionType = "ADD_ITEM"
	ActionRemoveItem       ActionType = "REMOVE_ITEM"
	ActionDropItem         ActionType = "DROP_ITEM"
	ActionEquipItem        ActionType = "EQUIP_ITEM"
	ActionUnequipItem      ActionType = "UNEQUIP_ITEM"
	ActionSetLocation      ActionType = "SET_LOCATION"
	ActionUpdateNPCMemory  ActionType = "UPDATE_NPC_MEMORY"
	ActionUpdateReputation ActionType = "UPDATE_REPUTATION"
	ActionAddJournal       ActionType = "ADD_JOURNAL"
	ActionUpdateQuests     ActionType = "UPDATE_QUESTS"
	ActionUpdateMap        ActionType = "UPDATE_MAP"
	ActionStartCombat      ActionType = "START_COMBAT"
	ActionUpdateCombat     ActionType = "UPDATE_COMBAT"
	ActionEndCombat        ActionType = "END_COMBAT"
	ActionGameOver         ActionType = "GAME_OVER"
	ActionAdvanceTurn      ActionType = "ADVANCE_TURN"
	ActionUpdateWorld      ActionType = "UPDATE_WORLD"
)

// Action is a state transition understood by Reduce.
type Action interface {
	Type() ActionType
}

// LoadState replaces the working state with a saved or partial one.
type LoadState struct{ State *GameState }

type AddLog struct{ Entry LogEntry }

// UpdateStats shallow-merges the set fields into the player's stats.
// Clamping is the caller's job; Reduce writes the values as given.
type UpdateStats struct {
	HP           *int
	MaxHP        *int
	XP           *int
	Level        *int
	Strength     *int
	Defense      *int
	Dexterity    *int
	Constitution *int
	Intelligence *int
	Wisdom       *int
	Charisma     *int
	ArmorClass   *int
	Supplies     *int
}

type UpdateGold struct{ Delta int }

type AddItem struct{ Item Item }

// RemoveItem takes one unit of the named item.
type RemoveItem struct{ Name string }

// DropItem discards the whole named stack.
type DropItem struct{ Name string }

type EquipItem struct{ Name string }

type UnequipItem struct{ Name string }

type SetLocation struct {
	Name        string
	Description string
}

type UpdateNPCMemory struct{ Memories NPCMemory }

type UpdateReputation struct{ Delta int }

type AddJournal struct{ Text string }

// UpdateQuests appends New (if set) and then completes CompletedID (if set).
type UpdateQuests struct {
	New         *Quest
	CompletedID string
}

// UpdateMap moves one step in Direction and records Terrain at the new position.
type UpdateMap struct {
	Direction Direction
	Terrain   Terrain
}

type StartCombat struct {
	EnemyName   string
	HP          int
	Description string
	EnemyType   string
}

type UpdateCombat struct{ Damage int }

type EndCombat struct{}

type GameOver struct{}

// AdvanceTurn counts one resolved turn.
type AdvanceTurn struct{}

// UpdateWorld overwrites world conditions that are set.
type UpdateWorld struct {
	TimeOfDay   string
	DangerLevel *int
}

func (LoadState) Type() ActionType        { return ActionLoadState }
func (AddLog) Type() ActionType           { return ActionAddLog }
func (UpdateStats) Type() ActionType      { return ActionUpdateStats }
func (UpdateGold) Type() ActionType       { return ActionUpdateGold }
func (AddItem) Type() ActionType          { return ActionAddItem }
func (RemoveItem) Type() ActionType       { return ActionRemoveItem }
func (DropItem) Type() ActionType         { return ActionDropItem }
func (EquipItem) Type() ActionType        { return ActionEquipItem }
func (UnequipItem) Type() ActionType      { return ActionUnequipItem }
func (SetLocation) Type() ActionType      { return ActionSetLocation }
func (UpdateNPCMemory) Type() ActionType  { return ActionUpdateNPCMemory }
func (UpdateReputation) Type() ActionType { return ActionUpdateReputation }
func (AddJournal) Type() ActionType       { return ActionAddJournal }
func (UpdateQuests) Type() ActionType     { return ActionUpdateQuests }
func (UpdateMap) Type() ActionType        { return ActionUpdateMap }
func (StartCombat) Type() ActionType      { return ActionStartCombat }
func (UpdateCombat) Type() ActionType     { return ActionUpdateCombat }
func (EndCombat) Type() ActionType        { return ActionEndCombat }
func (GameOver) Type() ActionType         { return ActionGameOver }
func (AdvanceTurn) Type() ActionType      { return ActionAdvanceTurn }
func (UpdateWorld) Type() ActionType      { return ActionUpdateWorld }

// allowedAfterGameOver are the only actions that still apply to a finished game.
var allowedAfterGameOver = map[ActionType]bool{
	ActionLoadState: true,
	ActionAddLog:    true,
	ActionGameOver:  true,
}
