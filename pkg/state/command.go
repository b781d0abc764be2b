package state

import (
	"fmt"
	"sort"
	"strings"
)

type CommandType string

const (
	CmdLook      CommandType = "look"
	CmdInventory CommandType = "inventory"
	CmdQuests    CommandType = "quests"
	CmdJournal   CommandType = "journal"
	CmdEquip     CommandType = "equip"
	CmdUnequip   CommandType = "unequip"
	CmdDrop      CommandType = "drop"
	CmdNone      CommandType = "" // No command, used for fallback
)

var knownCommands = map[string]CommandType{
	"look":      CmdLook,
	"l":         CmdLook,
	"inventory": CmdInventory,
	"i":         CmdInventory,
	"quests":    CmdQuests,
	"q":         CmdQuests,
	"journal":   CmdJournal,
	"j":         CmdJournal,
	"equip":     CmdEquip,
	"unequip":   CmdUnequip,
	"drop":      CmdDrop,
}

// ParseCommand recognizes a leading slash command and its argument.
// Anything else is free text for the narrator and returns CmdNone.
func ParseCommand(input string) (CommandType, string) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return CmdNone, ""
	}
	word, arg, _ := strings.Cut(strings.TrimPrefix(trimmed, "/"), " ")
	cmd, ok := knownCommands[strings.ToLower(word)]
	if !ok {
		return CmdNone, ""
	}
	return cmd, strings.TrimSpace(arg)
}

// CommandResult is the local resolution of a slash command. Views carry
// only a Message; inventory commands also carry the Action to dispatch.
type CommandResult struct {
	Handled bool
	Message string
	Action  Action
}

// TryHandleCommand resolves shortcut commands without a narrator call.
func (gs *GameState) TryHandleCommand(input string) *CommandResult {
	cmd, arg := ParseCommand(input)
	switch cmd {
	case CmdLook:
		return &CommandResult{Handled: true, Message: gs.DescribeLocation()}
	case CmdInventory:
		return &CommandResult{Handled: true, Message: gs.DescribeInventory()}
	case CmdQuests:
		return &CommandResult{Handled: true, Message: gs.DescribeQuests()}
	case CmdJournal:
		return &CommandResult{Handled: true, Message: gs.DescribeJournal()}
	case CmdEquip, CmdUnequip, CmdDrop:
		return gs.itemCommand(cmd, arg)
	default:
		return &CommandResult{Handled: false, Message: input}
	}
}

func (gs *GameState) itemCommand(cmd CommandType, name string) *CommandResult {
	if name == "" {
		return &CommandResult{Handled: true, Message: fmt.Sprintf("%s what?", cmd)}
	}
	idx := gs.Player.FindItem(name)
	if idx < 0 {
		return &CommandResult{Handled: true, Message: fmt.Sprintf("You are not carrying %s.", name)}
	}
	switch cmd {
	case CmdEquip:
		if !gs.Player.Inventory[idx].Slot.Equippable() {
			return &CommandResult{Handled: true, Message: fmt.Sprintf("%s cannot be equipped.", name)}
		}
		return &CommandResult{Handled: true, Message: fmt.Sprintf("You equip %s.", name), Action: EquipItem{Name: name}}
	case CmdUnequip:
		return &CommandResult{Handled: true, Message: fmt.Sprintf("You put away %s.", name), Action: UnequipItem{Name: name}}
	default:
		return &CommandResult{Handled: true, Action: DropItem{Name: name}}
	}
}

func (gs *GameState) DescribeLocation() string {
	if gs.World.LocationName == "" {
		return "You are in an unknown location."
	}
	tile := gs.CurrentTile()
	return fmt.Sprintf("%s (%s, %s). %s", gs.World.LocationName, strings.ToLower(string(tile.Type)),
		gs.World.TimeOfDay, gs.World.LocationDescription)
}

func (gs *GameState) DescribeInventory() string {
	if len(gs.Player.Inventory) == 0 {
		return "Your inventory is empty."
	}
	lines := make([]string, 0, len(gs.Player.Inventory)+1)
	for _, item := range gs.Player.Inventory {
		line := fmt.Sprintf("- %s x%d", item.Name, item.Quantity)
		if item.Equipped {
			line += " [equipped]"
		}
		lines = append(lines, line)
	}
	enc := gs.Player.Encumbrance()
	lines = append(lines, fmt.Sprintf("Load: %.1f / %.1f", enc.Current, enc.Max))
	return "You have:\n" + strings.Join(lines, "\n")
}

func (gs *GameState) DescribeQuests() string {
	active := gs.Player.ActiveQuests()
	if len(active) == 0 {
		return "You have no active quests."
	}
	titles := make([]string, 0, len(active))
	for _, q := range active {
		titles = append(titles, "- "+q.Title)
	}
	sort.Strings(titles)
	return "Active quests:\n" + strings.Join(titles, "\n")
}

func (gs *GameState) DescribeJournal() string {
	if len(gs.Player.Journal) == 0 {
		return "Your journal is empty."
	}
	return "Journal:\n- " + strings.Join(gs.Player.Journal, "\n- ")
}
