package narrator

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jwebster45206/quest-engine/pkg/state"
	"github.com/jwebster45206/quest-engine/pkg/textfilter"
)

// RequiredFields must be present in every response, even when empty.
var RequiredFields = []string{
	"narrative",
	"hp_change",
	"xp_gained",
	"supplies_consumed",
	"items_added",
	"items_removed_names",
	"suggested_actions",
	"movement_direction",
	"current_terrain_type",
}

// ResponseItem is an item as the narrator describes it.
type ResponseItem struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        state.ItemType    `json:"type"`
	Quantity    int               `json:"quantity"`
	Weight      *float64          `json:"weight,omitempty"`
	Slot        state.EquipSlot   `json:"slot,omitempty"`
	Effect      *state.StatEffect `json:"effect,omitempty"`
}

// ToItem converts to an inventory entry.
func (ri ResponseItem) ToItem() state.Item {
	return state.Item{
		ID:          ri.ID,
		Name:        ri.Name,
		Description: ri.Description,
		Type:        ri.Type,
		Quantity:    ri.Quantity,
		Weight:      ri.Weight,
		Slot:        ri.Slot,
		Effect:      ri.Effect,
	}
}

// Response is the structured outcome of one turn.
type Response struct {
	Narrative              string                 `json:"narrative"`
	HPChange               int                    `json:"hp_change"`
	XPGained               int                    `json:"xp_gained"`
	SuppliesConsumed       int                    `json:"supplies_consumed"`
	GoldChange             *int                   `json:"gold_change,omitempty"`
	ItemsAdded             []ResponseItem         `json:"items_added"`
	ItemsRemovedNames      []string               `json:"items_removed_names"`
	NewLocationName        string                 `json:"new_location_name,omitempty"`
	NewLocationDescription string                 `json:"new_location_description,omitempty"`
	UpdatedNPCMemories     []state.NPCMemoryEntry `json:"updated_npc_memories,omitempty"`
	ReputationChange       *int                   `json:"reputation_change,omitempty"`
	NewQuest               *state.Quest           `json:"new_quest,omitempty"`
	QuestCompletedID       string                 `json:"quest_completed_id,omitempty"`
	NewJournalEntry        string                 `json:"new_journal_entry,omitempty"`
	SuggestedActions       []string               `json:"suggested_actions"`
	IsGameOver             bool                   `json:"is_game_over,omitempty"`
	MovementDirection      state.Direction        `json:"movement_direction"`
	CurrentTerrainType     state.Terrain          `json:"current_terrain_type"`
	CombatStart            bool                   `json:"combat_start,omitempty"`
	EnemyName              string                 `json:"enemy_name,omitempty"`
	EnemyDesc              string                 `json:"enemy_desc,omitempty"`
	EnemyType              string                 `json:"enemy_type,omitempty"`
	EnemyHP                *int                   `json:"enemy_hp,omitempty"`
	EnemyDamageTaken       *int                   `json:"enemy_damage_taken,omitempty"`
	CombatEnded            bool                   `json:"combat_ended,omitempty"`
	TimeOfDay              string                 `json:"time_of_day,omitempty"`
	DangerLevel            *int                   `json:"danger_level,omitempty"`
}

// Decode parses a raw response body, checks that every required field is
// present and validates the result. Nothing is returned unless the whole
// response is usable.
func Decode(data []byte) (*Response, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	var missing []string
	for _, field := range RequiredFields {
		raw, ok := present[field]
		if !ok || string(raw) == "null" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrInvalidResponse, strings.Join(missing, ", "))
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Parse extracts a JSON object from free-form model output and decodes it.
func Parse(text string) (*Response, error) {
	return Decode([]byte(textfilter.ExtractJSON(text)))
}

// Validate enforces value constraints the JSON types cannot. Item
// quantities of zero are normalized to one.
func (r *Response) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Narrative) == "" {
		errs = append(errs, errors.New("narrative is empty"))
	}
	if !slices.Contains(state.Directions, r.MovementDirection) {
		errs = append(errs, fmt.Errorf("movement_direction %q is not a direction", r.MovementDirection))
	}
	if !slices.Contains(state.Terrains, r.CurrentTerrainType) {
		errs = append(errs, fmt.Errorf("current_terrain_type %q is not a terrain", r.CurrentTerrainType))
	}
	if r.XPGained < 0 {
		errs = append(errs, fmt.Errorf("xp_gained must not be negative, got %d", r.XPGained))
	}
	for i := range r.ItemsAdded {
		item := &r.ItemsAdded[i]
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, fmt.Errorf("items_added[%d] has no name", i))
		}
		if !slices.Contains(state.ItemTypes, item.Type) {
			errs = append(errs, fmt.Errorf("items_added[%d] type %q is not an item type", i, item.Type))
		}
		if item.Slot != "" && !slices.Contains(state.EquipSlots, item.Slot) {
			errs = append(errs, fmt.Errorf("items_added[%d] slot %q is not a slot", i, item.Slot))
		}
		if item.Weight != nil && *item.Weight < 0 {
			errs = append(errs, fmt.Errorf("items_added[%d] weight must not be negative", i))
		}
		switch {
		case item.Quantity == 0:
			item.Quantity = 1
		case item.Quantity < 0:
			errs = append(errs, fmt.Errorf("items_added[%d] quantity must be positive, got %d", i, item.Quantity))
		}
	}
	if r.NewQuest != nil && (r.NewQuest.ID == "" || r.NewQuest.Title == "") {
		errs = append(errs, errors.New("new_quest needs an id and a title"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, errors.Join(errs...))
	}
	return nil
}

// NPCMemories folds the list-form memory updates into a map.
func (r *Response) NPCMemories() state.NPCMemory {
	return state.MemoriesFromEntries(r.UpdatedNPCMemories)
}
