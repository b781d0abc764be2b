package narrator

import (
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// Schema node types, using JSON Schema names.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Schema is a provider-neutral description of the response shape. Providers
// with structured output convert it into their own schema type.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Nullable    bool               `json:"nullable,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

func str(desc string) *Schema  { return &Schema{Type: TypeString, Description: desc} }
func num(desc string) *Schema  { return &Schema{Type: TypeInteger, Description: desc} }
func flag(desc string) *Schema { return &Schema{Type: TypeBoolean, Description: desc} }

func enum[T ~string](desc string, values []T) *Schema {
	s := &Schema{Type: TypeString, Description: desc}
	for _, v := range values {
		s.Enum = append(s.Enum, string(v))
	}
	return s
}

func optional(s *Schema) *Schema {
	s.Nullable = true
	return s
}

// ResponseSchema describes Response for the model.
func ResponseSchema() *Schema {
	item := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"id":          str("Stable identifier, lowercase with dashes."),
			"name":        str("Display name."),
			"description": str("One sentence."),
			"type":        enum("Item category.", state.ItemTypes),
			"quantity":    num("How many were gained, at least 1."),
			"weight":      optional(&Schema{Type: TypeNumber, Description: "Weight of one unit."}),
			"slot":        optional(enum("Where the item is worn or held.", state.EquipSlots)),
			"effect": optional(&Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"stat":  str("Stat affected, e.g. strength or defense."),
					"value": num("Bonus applied while equipped."),
				},
				Required: []string{"stat", "value"},
			}),
		},
		Required: []string{"id", "name", "description", "type", "quantity"},
	}
	quest := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"id":          str("Stable identifier."),
			"title":       str("Short title."),
			"description": str("What must be done."),
			"type":        enum("Quest tier.", []state.QuestType{state.QuestMinor, state.QuestMajor, state.QuestWorld}),
		},
		Required: []string{"id", "title", "description"},
	}
	memory := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"npcName": str("Name of the character."),
			"memory":  str("What they now remember about the player."),
		},
		Required: []string{"npcName", "memory"},
	}

	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"narrative":                str("Second-person narration of what happened."),
			"hp_change":                num("Change to player HP, negative for damage."),
			"xp_gained":                num("Experience earned, zero or more."),
			"supplies_consumed":        num("Supplies used this turn."),
			"gold_change":              optional(num("Change to gold.")),
			"items_added":              {Type: TypeArray, Items: item},
			"items_removed_names":      {Type: TypeArray, Items: str("Exact inventory name.")},
			"new_location_name":        optional(str("Set only when the player arrives somewhere new.")),
			"new_location_description": optional(str("Description of the new location.")),
			"updated_npc_memories":     optional(&Schema{Type: TypeArray, Items: memory}),
			"reputation_change":        optional(num("Change to reputation.")),
			"new_quest":                optional(quest),
			"quest_completed_id":       optional(str("ID of a quest finished this turn.")),
			"new_journal_entry":        optional(str("A line for the player's journal.")),
			"suggested_actions":        {Type: TypeArray, Items: str("A short action the player could take next.")},
			"is_game_over":             optional(flag("True only if the player has died or the story has ended.")),
			"movement_direction":       enum("Direction moved on the map, NONE if the player stayed.", state.Directions),
			"current_terrain_type":     enum("Terrain at the player's position after the turn.", state.Terrains),
			"combat_start":             optional(flag("True when a fight begins this turn.")),
			"enemy_name":               optional(str("Name of the enemy when combat starts.")),
			"enemy_desc":               optional(str("Short description of the enemy.")),
			"enemy_type":               optional(str("Kind of creature.")),
			"enemy_hp":                 optional(num("Enemy starting HP.")),
			"enemy_damage_taken":       optional(num("Damage dealt to the enemy this turn.")),
			"combat_ended":             optional(flag("True when the fight is over.")),
			"time_of_day":              optional(str("Time of day after the turn.")),
			"danger_level":             optional(num("Danger of the area, zero or more.")),
		},
		Required: RequiredFields,
	}
}
