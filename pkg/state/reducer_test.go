package state

import (
	"testing"

	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func TestNewGameState(t *testing.T) {
	gs := NewGameState("Rin")

	if gs.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if gs.Player.Name != "Rin" {
		t.Errorf("Player.Name = %q, want Rin", gs.Player.Name)
	}
	if gs.Player.Stats.HP != DefaultHP || gs.Player.Stats.MaxHP != DefaultHP {
		t.Errorf("hp = %d/%d, want %d/%d", gs.Player.Stats.HP, gs.Player.Stats.MaxHP, DefaultHP, DefaultHP)
	}
	if gs.Player.Stats.Level != 1 {
		t.Errorf("Level = %d, want 1", gs.Player.Stats.Level)
	}
	// 10 + dex modifier (+1) + jerkin (+1)
	if gs.Player.Stats.ArmorClass != 12 {
		t.Errorf("ArmorClass = %d, want 12", gs.Player.Stats.ArmorClass)
	}
	if len(gs.Player.Inventory) != 3 {
		t.Errorf("inventory size = %d, want 3", len(gs.Player.Inventory))
	}
	if tile := gs.World.Map[CoordKey(0, 0)]; tile.Type != TerrainPlains || !tile.Visited {
		t.Errorf("spawn tile = %+v, want visited PLAINS", tile)
	}
	if len(gs.GameLog) != 1 || gs.GameLog[0].Sender != SenderSystem {
		t.Errorf("expected one system welcome entry, got %+v", gs.GameLog)
	}
	if gs.TurnCount != 0 || gs.IsGameOver {
		t.Errorf("expected fresh turn counter and running game")
	}
	if errs := CheckInvariants(gs); len(errs) != 0 {
		t.Errorf("fresh state breaks invariants: %v", errs)
	}
}

func TestNewGameState_BlankName(t *testing.T) {
	gs := NewGameState("   ")
	if gs.Player.Name != DefaultPlayerName {
		t.Errorf("Player.Name = %q, want %q", gs.Player.Name, DefaultPlayerName)
	}
}

func TestReduce_AddItemStacksByName(t *testing.T) {
	gs := NewGameState("Rin")
	gs = Reduce(gs, AddItem{Item: Item{Name: "Torch", Type: ItemTool, Quantity: 1}})
	gs = Reduce(gs, AddItem{Item: Item{Name: "Torch", Type: ItemTool, Quantity: 2}})

	count := 0
	for _, item := range gs.Player.Inventory {
		if item.Name == "Torch" {
			count++
			if item.Quantity != 3 {
				t.Errorf("Torch quantity = %d, want 3", item.Quantity)
			}
		}
	}
	if count != 1 {
		t.Errorf("found %d Torch entries, want 1", count)
	}
}

func TestReduce_AddItemNeverArrivesEquipped(t *testing.T) {
	gs := NewGameState("Rin")
	next := Reduce(gs, AddItem{Item: Item{Name: "Iron Helm", Slot: SlotHead, Quantity: 1, Equipped: true}})
	idx := next.Player.FindItem("Iron Helm")
	if idx < 0 {
		t.Fatal("Iron Helm not added")
	}
	if next.Player.Inventory[idx].Equipped {
		t.Error("new items must arrive unequipped")
	}
}

func TestReduce_AddThenRemoveRestoresInventory(t *testing.T) {
	tests := []struct {
		name string
		item string
		n    int
	}{
		{"absent item", "Torch", 3},
		{"existing stack", "Hemp Rope", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := NewGameState("Rin")
			before := gs.Clone().Player.Inventory

			for i := 0; i < tt.n; i++ {
				gs = Reduce(gs, AddItem{Item: Item{Name: tt.item, Quantity: 1}})
			}
			for i := 0; i < tt.n; i++ {
				gs = Reduce(gs, RemoveItem{Name: tt.item})
			}

			if len(gs.Player.Inventory) != len(before) {
				t.Fatalf("inventory size = %d, want %d", len(gs.Player.Inventory), len(before))
			}
			for i := range before {
				if gs.Player.Inventory[i].Name != before[i].Name || gs.Player.Inventory[i].Quantity != before[i].Quantity {
					t.Errorf("entry %d = %s x%d, want %s x%d", i,
						gs.Player.Inventory[i].Name, gs.Player.Inventory[i].Quantity,
						before[i].Name, before[i].Quantity)
				}
			}
		})
	}
}

func TestReduce_RemoveAndDrop(t *testing.T) {
	gs := NewGameState("Rin")
	gs = Reduce(gs, AddItem{Item: Item{Name: "Torch", Quantity: 4}})

	t.Run("remove missing is a no-op", func(t *testing.T) {
		if next := Reduce(gs, RemoveItem{Name: "Lantern"}); next != gs {
			t.Error("expected the same state pointer")
		}
	})

	t.Run("drop removes whole stack and logs", func(t *testing.T) {
		next := Reduce(gs, DropItem{Name: "Torch"})
		if next.Player.FindItem("Torch") >= 0 {
			t.Error("Torch still in inventory")
		}
		last := next.GameLog[len(next.GameLog)-1]
		if last.Sender != SenderSystem || last.Content != "You dropped Torch." {
			t.Errorf("last log = %+v", last)
		}
	})

	t.Run("drop missing is a no-op", func(t *testing.T) {
		if next := Reduce(gs, DropItem{Name: "Lantern"}); next != gs {
			t.Error("expected the same state pointer")
		}
	})
}

func TestReduce_EquipExclusivity(t *testing.T) {
	gs := NewGameState("Rin")
	gs = Reduce(gs, AddItem{Item: Item{Name: "Short Spear", Type: ItemWeapon, Slot: SlotHand, Quantity: 1}})
	gs = Reduce(gs, AddItem{Item: Item{Name: "Lucky Coin", Type: ItemArtifact, Slot: SlotNone, Quantity: 1}})
	gs = Reduce(gs, AddItem{Item: Item{Name: "Bent Nail", Type: ItemTool, Quantity: 1}})

	tests := []struct {
		name      string
		equip     string
		wantNoop  bool
		wantInHnd string
	}{
		{"switch hand item", "Short Spear", false, "Short Spear"},
		{"slot none is not equippable", "Lucky Coin", true, "Rusty Sword"},
		{"no slot is not equippable", "Bent Nail", true, "Rusty Sword"},
		{"missing item", "Warhammer", true, "Rusty Sword"},
		{"already equipped", "Rusty Sword", true, "Rusty Sword"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Reduce(gs, EquipItem{Name: tt.equip})
			if (next == gs) != tt.wantNoop {
				t.Fatalf("no-op = %v, want %v", next == gs, tt.wantNoop)
			}
			held, ok := next.Player.EquippedIn(SlotHand)
			if !ok || held.Name != tt.wantInHnd {
				t.Errorf("hand = %q, want %q", held.Name, tt.wantInHnd)
			}
			equipped := 0
			for _, item := range next.Player.Inventory {
				if item.Slot == SlotHand && item.Equipped {
					equipped++
				}
			}
			if equipped > 1 {
				t.Errorf("%d items equipped in hand", equipped)
			}
		})
	}
}

func TestReduce_Unequip(t *testing.T) {
	gs := NewGameState("Rin")
	next := Reduce(gs, UnequipItem{Name: "Rusty Sword"})
	if _, ok := next.Player.EquippedIn(SlotHand); ok {
		t.Error("hand should be empty")
	}
	if orig, _ := gs.Player.EquippedIn(SlotHand); orig.Name != "Rusty Sword" {
		t.Error("input state was mutated")
	}
	if again := Reduce(next, UnequipItem{Name: "Rusty Sword"}); again != next {
		t.Error("unequipping a stowed item should be a no-op")
	}
}

func TestReduce_UpdateGoldFloorsAtZero(t *testing.T) {
	gs := NewGameState("Rin")
	tests := []struct {
		delta int
		want  int
	}{
		{5, 15},
		{-3, 7},
		{-50, 0},
	}
	for _, tt := range tests {
		if got := Reduce(gs, UpdateGold{Delta: tt.delta}).Player.Gold; got != tt.want {
			t.Errorf("gold after %+d = %d, want %d", tt.delta, got, tt.want)
		}
	}
}

func TestReduce_UpdateStatsMergesSetFields(t *testing.T) {
	gs := NewGameState("Rin")
	next := Reduce(gs, UpdateStats{HP: intPtr(7), XP: intPtr(40)})
	s := next.Player.Stats
	if s.HP != 7 || s.XP != 40 {
		t.Errorf("hp/xp = %d/%d, want 7/40", s.HP, s.XP)
	}
	if s.Supplies != DefaultSupplies || s.MaxHP != DefaultHP {
		t.Errorf("unset fields changed: %+v", s)
	}
}

func TestReduce_UpdateMap(t *testing.T) {
	gs := NewGameState("Rin")
	next := Reduce(gs, UpdateMap{Direction: North, Terrain: TerrainForest})

	if next.Player.Position != (Coordinates{X: 0, Y: 1}) {
		t.Errorf("position = %+v, want (0,1)", next.Player.Position)
	}
	if tile := next.World.Map["0,1"]; tile != (Tile{Type: TerrainForest, Visited: true}) {
		t.Errorf("tile 0,1 = %+v", tile)
	}
	if tile := next.World.Map["0,0"]; tile != gs.World.Map["0,0"] {
		t.Errorf("tile 0,0 changed to %+v", tile)
	}
}

func TestReduce_UpdateMapIdempotentOnTerrain(t *testing.T) {
	gs := NewGameState("Rin")
	a := Reduce(gs, UpdateMap{Direction: East, Terrain: TerrainSwamp})
	b := Reduce(gs, UpdateMap{Direction: East, Terrain: TerrainSwamp})
	if len(a.World.Map) != len(b.World.Map) || a.World.Map["1,0"] != b.World.Map["1,0"] {
		t.Error("same move from the same origin produced different maps")
	}

	stay := Reduce(Reduce(gs, UpdateMap{Direction: None, Terrain: TerrainCave}), UpdateMap{Direction: None, Terrain: TerrainCave})
	if len(stay.World.Map) != 1 {
		t.Errorf("map size = %d, want 1", len(stay.World.Map))
	}
	if stay.World.Map["0,0"].Type != TerrainCave {
		t.Errorf("tile 0,0 = %+v, want CAVE", stay.World.Map["0,0"])
	}
}

func TestReduce_UpdateMapDefaultsTerrain(t *testing.T) {
	next := Reduce(NewGameState("Rin"), UpdateMap{Direction: West})
	if next.World.Map["-1,0"].Type != TerrainUnknown {
		t.Errorf("tile -1,0 = %+v, want UNKNOWN", next.World.Map["-1,0"])
	}
}

func TestReduce_CombatLifecycle(t *testing.T) {
	gs := NewGameState("Rin")

	t.Run("update while inactive is a no-op", func(t *testing.T) {
		if next := Reduce(gs, UpdateCombat{Damage: 5}); next != gs {
			t.Error("expected the same state pointer")
		}
	})

	fighting := Reduce(gs, StartCombat{EnemyName: "Bog Wight", HP: 12, Description: "Wet and furious."})
	if !fighting.Combat.IsActive || *fighting.Combat.EnemyHP != 12 || *fighting.Combat.EnemyMaxHP != 12 {
		t.Fatalf("combat = %+v", fighting.Combat)
	}

	hit := Reduce(fighting, UpdateCombat{Damage: 5})
	if *hit.Combat.EnemyHP != 7 {
		t.Errorf("enemy hp = %d, want 7", *hit.Combat.EnemyHP)
	}
	if *fighting.Combat.EnemyHP != 12 {
		t.Error("input state was mutated")
	}

	overkill := Reduce(hit, UpdateCombat{Damage: 50})
	if *overkill.Combat.EnemyHP != 0 {
		t.Errorf("enemy hp = %d, want 0", *overkill.Combat.EnemyHP)
	}

	ended := Reduce(overkill, EndCombat{})
	if ended.Combat.IsActive || ended.Combat.EnemyName != "" || ended.Combat.EnemyHP != nil {
		t.Errorf("combat not cleared: %+v", ended.Combat)
	}
}

func TestReduce_StartCombatOverwrites(t *testing.T) {
	gs := Reduce(NewGameState("Rin"), StartCombat{EnemyName: "Wolf", HP: 8})
	gs = Reduce(gs, StartCombat{EnemyName: "Bear", HP: 30})
	if gs.Combat.EnemyName != "Bear" || *gs.Combat.EnemyMaxHP != 30 {
		t.Errorf("combat = %+v", gs.Combat)
	}
}

func TestReduce_Quests(t *testing.T) {
	gs := NewGameState("Rin")
	next := Reduce(gs, UpdateQuests{
		New:         &Quest{ID: "q1", Title: "Find the mill", Completed: true},
		CompletedID: "q1",
	})
	if len(next.Player.Quests) != 1 || !next.Player.Quests[0].Completed {
		t.Errorf("quests = %+v, want q1 completed", next.Player.Quests)
	}

	added := Reduce(gs, UpdateQuests{New: &Quest{ID: "q2", Title: "Pay the toll", Completed: true}})
	if added.Player.Quests[0].Completed {
		t.Error("new quests start incomplete")
	}

	if noop := Reduce(gs, UpdateQuests{}); noop != gs {
		t.Error("empty quest update should be a no-op")
	}
}

func TestReduce_NPCMemoryMerges(t *testing.T) {
	gs := Reduce(NewGameState("Rin"), UpdateNPCMemory{Memories: NPCMemory{"Mara": "wary", "Tobin": "friendly"}})
	gs = Reduce(gs, UpdateNPCMemory{Memories: NPCMemory{"Mara": "grateful"}})

	if gs.World.NPCMemory["Mara"] != "grateful" || gs.World.NPCMemory["Tobin"] != "friendly" {
		t.Errorf("npc memory = %v", gs.World.NPCMemory)
	}
}

func TestReduce_SimpleTransitions(t *testing.T) {
	gs := NewGameState("Rin")

	loc := Reduce(gs, SetLocation{Name: "Old Mill", Description: "Dusty."})
	if loc.World.LocationName != "Old Mill" || loc.World.LocationDescription != "Dusty." {
		t.Errorf("location = %q / %q", loc.World.LocationName, loc.World.LocationDescription)
	}

	rep := Reduce(Reduce(gs, UpdateReputation{Delta: -4}), UpdateReputation{Delta: 1})
	if rep.Player.Reputation != -3 {
		t.Errorf("reputation = %d, want -3", rep.Player.Reputation)
	}

	j := Reduce(gs, AddJournal{Text: "The miller lied."})
	if len(j.Player.Journal) != 1 || j.Player.Journal[0] != "The miller lied." {
		t.Errorf("journal = %v", j.Player.Journal)
	}

	turned := Reduce(Reduce(gs, AdvanceTurn{}), AdvanceTurn{})
	if turned.TurnCount != 2 {
		t.Errorf("turn count = %d, want 2", turned.TurnCount)
	}

	world := Reduce(gs, UpdateWorld{TimeOfDay: "Dusk", DangerLevel: intPtr(3)})
	if world.World.TimeOfDay != "Dusk" || world.World.DangerLevel != 3 {
		t.Errorf("world = %+v", world.World)
	}
}

func TestReduce_UnknownActionIsNoop(t *testing.T) {
	type bogus struct{ AddLog }
	gs := NewGameState("Rin")
	if next := Reduce(gs, bogus{}); next != gs {
		t.Error("unknown action should return the same pointer")
	}
	if next := Reduce(gs, nil); next != gs {
		t.Error("nil action should return the same pointer")
	}
}

func TestReduce_GameOverIsOneWay(t *testing.T) {
	gs := Reduce(NewGameState("Rin"), GameOver{})
	if !gs.IsGameOver {
		t.Fatal("expected game over")
	}

	gameplay := []Action{
		UpdateStats{HP: intPtr(20)},
		UpdateGold{Delta: 5},
		AddItem{Item: Item{Name: "Torch", Quantity: 1}},
		RemoveItem{Name: "Hemp Rope"},
		DropItem{Name: "Hemp Rope"},
		EquipItem{Name: "Rusty Sword"},
		UnequipItem{Name: "Rusty Sword"},
		SetLocation{Name: "Elsewhere"},
		UpdateNPCMemory{Memories: NPCMemory{"Mara": "sad"}},
		UpdateReputation{Delta: 1},
		AddJournal{Text: "after"},
		UpdateQuests{New: &Quest{ID: "q"}},
		UpdateMap{Direction: North, Terrain: TerrainForest},
		StartCombat{EnemyName: "Ghost", HP: 3},
		EndCombat{},
		AdvanceTurn{},
		UpdateWorld{TimeOfDay: "Night"},
	}
	for _, a := range gameplay {
		if next := Reduce(gs, a); next != gs {
			t.Errorf("%s applied after game over", a.Type())
		}
	}

	if again := Reduce(gs, GameOver{}); again != gs || !again.IsGameOver {
		t.Error("repeated game over should be a no-op")
	}

	logged := Reduce(gs, AddLog{Entry: NewLogEntry(SenderSystem, "The end.")})
	if !logged.IsGameOver || len(logged.GameLog) != len(gs.GameLog)+1 {
		t.Error("log entries must still append after game over")
	}

	restarted := Reduce(gs, LoadState{State: NewGameState("Rin")})
	if restarted.IsGameOver {
		t.Error("load should escape game over")
	}
}

func TestReduce_LoadStateMergesPartialPayload(t *testing.T) {
	id := uuid.New()
	partial := &GameState{
		ID: id,
		Player: Player{
			Name:  "Ash",
			Stats: CharacterStats{HP: 40, MaxHP: 25, XP: 30},
			Inventory: []Item{
				{Name: "Lantern", Quantity: 1},
				{Name: "Ghost", Quantity: 0},
			},
		},
	}

	gs := Reduce(nil, LoadState{State: partial})

	if gs.ID != id {
		t.Errorf("id = %s, want %s", gs.ID, id)
	}
	if gs.Player.Class != DefaultClass {
		t.Errorf("class = %q, want default", gs.Player.Class)
	}
	if gs.Player.Stats.HP != 25 || gs.Player.Stats.Level != 1 || gs.Player.Stats.Strength != 12 {
		t.Errorf("stats = %+v", gs.Player.Stats)
	}
	if gs.Player.Journal == nil || gs.Player.Quests == nil || gs.World.NPCMemory == nil {
		t.Error("nil collections were not defaulted")
	}
	if gs.World.LocationName != DefaultLocation || gs.World.TimeOfDay != DefaultTimeOfDay {
		t.Errorf("world = %+v", gs.World)
	}
	if len(gs.Player.Inventory) != 1 {
		t.Errorf("inventory = %+v, want only Lantern", gs.Player.Inventory)
	}
	if errs := CheckInvariants(gs); len(errs) != 0 {
		t.Errorf("merged state breaks invariants: %v", errs)
	}
	if partial.Player.Class != "" {
		t.Error("payload was mutated")
	}
}

func TestReduce_NeverMutatesInput(t *testing.T) {
	gs := NewGameState("Rin")
	snapshot := gs.Clone()

	actions := []Action{
		AddItem{Item: Item{Name: "Rusty Sword", Quantity: 1}},
		RemoveItem{Name: "Hemp Rope"},
		EquipItem{Name: "Rusty Sword"},
		UpdateMap{Direction: South, Terrain: TerrainDesert},
		UpdateNPCMemory{Memories: NPCMemory{"Mara": "x"}},
		AddLog{Entry: NewLogEntry(SenderPlayer, "hi")},
	}
	for _, a := range actions {
		_ = Reduce(gs, a)
	}

	if gs.Player.Inventory[0].Quantity != snapshot.Player.Inventory[0].Quantity ||
		len(gs.Player.Inventory) != len(snapshot.Player.Inventory) ||
		len(gs.World.Map) != len(snapshot.World.Map) ||
		len(gs.World.NPCMemory) != 0 ||
		len(gs.GameLog) != len(snapshot.GameLog) {
		t.Error("Reduce mutated its input")
	}
}

func TestReduce_StatsBoundsHoldAcrossSequence(t *testing.T) {
	gs := NewGameState("Rin")
	steps := []Action{
		UpdateStats{HP: intPtr(3), Supplies: intPtr(0)},
		AddItem{Item: Item{Name: "Bandage", Type: ItemConsumable, Quantity: 2}},
		StartCombat{EnemyName: "Rat", HP: 2},
		UpdateCombat{Damage: 9},
		EndCombat{},
		DropItem{Name: "Bandage"},
		UpdateGold{Delta: -100},
	}
	for _, a := range steps {
		gs = Reduce(gs, a)
		if errs := CheckInvariants(gs); len(errs) != 0 {
			t.Fatalf("after %s: %v", a.Type(), errs)
		}
	}
}
