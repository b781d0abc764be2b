package main

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/quest-engine/pkg/state"
)

// sidePanel is the auxiliary view shown beside the game log. Switching
// panels only reads the current snapshot.
type sidePanel int

const (
	panelStatus sidePanel = iota
	panelInventory
	panelMap
	panelQuests
	panelJournal
	panelCount
)

func (p sidePanel) Title() string {
	switch p {
	case panelInventory:
		return "INVENTORY"
	case panelMap:
		return "MAP"
	case panelQuests:
		return "QUESTS"
	case panelJournal:
		return "JOURNAL"
	default:
		return "CHARACTER"
	}
}

func (p sidePanel) Next() sidePanel {
	return (p + 1) % panelCount
}

// mapRadius is how many tiles around the player the map panel shows.
const mapRadius = 4

var terrainGlyphs = map[state.Terrain]rune{
	state.TerrainPlains:   '.',
	state.TerrainForest:   '♣',
	state.TerrainMountain: '^',
	state.TerrainDesert:   ':',
	state.TerrainSwamp:    '~',
	state.TerrainWater:    '≈',
	state.TerrainCave:     'o',
	state.TerrainTown:     '#',
	state.TerrainDungeon:  'D',
	state.TerrainRuins:    'R',
	state.TerrainUnknown:  '?',
}

func renderPanel(p sidePanel, gs *state.GameState) string {
	if gs == nil {
		return ""
	}
	var body string
	switch p {
	case panelInventory:
		body = renderInventory(gs)
	case panelMap:
		body = renderMap(gs, mapRadius)
	case panelQuests:
		body = renderQuests(gs)
	case panelJournal:
		body = renderJournal(gs)
	default:
		body = renderStatus(gs)
	}
	return titleStyle.Render(p.Title()) + "\n\n" + body
}

func renderStatus(gs *state.GameState) string {
	p := gs.Player
	s := p.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "%s the %s\n", p.Name, p.Class)
	fmt.Fprintf(&b, "Level %d  XP %d/%d\n", s.Level, s.XP, state.XPThreshold(s.Level))
	fmt.Fprintf(&b, "HP %d/%d  AC %d\n", s.HP, s.MaxHP, s.ArmorClass)
	fmt.Fprintf(&b, "Gold %d  Supplies %d\n", p.Gold, s.Supplies)
	fmt.Fprintf(&b, "Reputation %d\n\n", p.Reputation)

	for _, attr := range []struct {
		label string
		score int
	}{
		{"STR", s.Strength},
		{"DEX", s.Dexterity},
		{"CON", s.Constitution},
		{"INT", s.Intelligence},
		{"WIS", s.Wisdom},
		{"CHA", s.Charisma},
	} {
		fmt.Fprintf(&b, "%s %2d (%+d)\n", attr.label, attr.score, state.Modifier(attr.score))
	}

	w := gs.World
	fmt.Fprintf(&b, "\n%s\n%s, danger %d\n", w.LocationName, w.TimeOfDay, w.DangerLevel)
	fmt.Fprintf(&b, "Turn %d\n", gs.TurnCount)

	if len(p.Companions) > 0 {
		b.WriteString("\nCompanions:\n")
		for _, c := range p.Companions {
			fmt.Fprintf(&b, "• %s\n", c.Name)
		}
	}
	return b.String()
}

func renderInventory(gs *state.GameState) string {
	p := gs.Player
	if len(p.Inventory) == 0 {
		return "Your pack is empty.\n"
	}
	var b strings.Builder
	for _, item := range p.Inventory {
		marker := "•"
		if item.Equipped {
			marker = "⚔"
		}
		fmt.Fprintf(&b, "%s %s", marker, item.Name)
		if item.Quantity > 1 {
			fmt.Fprintf(&b, " x%d", item.Quantity)
		}
		if item.Effect != nil {
			fmt.Fprintf(&b, " (%+d %s)", item.Effect.Value, item.Effect.Stat)
		}
		b.WriteString("\n")
	}
	enc := p.Encumbrance()
	fmt.Fprintf(&b, "\nLoad %.1f / %.1f\n", enc.Current, enc.Max)
	if enc.Overloaded {
		b.WriteString(errorStyle.Render("Overloaded!") + "\n")
	}
	b.WriteString("\n/equip, /unequip, /drop <name>\n")
	return b.String()
}

// renderMap draws discovered tiles around the player, north up. Undiscovered
// tiles are blank and the player is '@'.
func renderMap(gs *state.GameState, radius int) string {
	pos := gs.Player.Position
	var b strings.Builder
	for y := pos.Y + radius; y >= pos.Y-radius; y-- {
		for x := pos.X - radius; x <= pos.X+radius; x++ {
			switch tile, ok := gs.World.Map[state.CoordKey(x, y)]; {
			case x == pos.X && y == pos.Y:
				b.WriteRune('@')
			case !ok:
				b.WriteRune(' ')
			default:
				glyph, known := terrainGlyphs[tile.Type]
				if !known {
					glyph = '?'
				}
				b.WriteRune(glyph)
			}
			if x < pos.X+radius {
				b.WriteRune(' ')
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n(%d, %d) %s\n", pos.X, pos.Y, strings.ToLower(string(gs.CurrentTile().Type)))
	return b.String()
}

func renderQuests(gs *state.GameState) string {
	if len(gs.Player.Quests) == 0 {
		return "No quests yet.\n"
	}
	var b strings.Builder
	for _, q := range gs.Player.Quests {
		box := "☐"
		if q.Completed {
			box = "☑"
		}
		fmt.Fprintf(&b, "%s %s\n", box, q.Title)
		if q.Description != "" && !q.Completed {
			fmt.Fprintf(&b, "  %s\n", q.Description)
		}
	}
	return b.String()
}

func renderJournal(gs *state.GameState) string {
	if len(gs.Player.Journal) == 0 {
		return "Nothing written yet.\n"
	}
	var b strings.Builder
	for i, entry := range gs.Player.Journal {
		fmt.Fprintf(&b, "%d. %s\n", i+1, entry)
	}
	return b.String()
}

// lastNarration returns the most recent narrator entry, for copying.
func lastNarration(gs *state.GameState) (string, bool) {
	if gs == nil {
		return "", false
	}
	for i := len(gs.GameLog) - 1; i >= 0; i-- {
		if gs.GameLog[i].Sender == state.SenderNarrator {
			return gs.GameLog[i].Content, true
		}
	}
	return "", false
}
