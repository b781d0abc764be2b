package state

import (
	"encoding/json"
	"fmt"
)

// NPCMemory maps an NPC's name to the last thing the player knows about them.
type NPCMemory map[string]string

// NPCMemoryEntry is the list form of a single NPC memory, as the narrator sends it.
type NPCMemoryEntry struct {
	NPCName string `json:"npcName"`
	Memory  string `json:"memory"`
}

// UnmarshalJSON allows NPCMemory to accept either a map or an array of
// {npcName, memory} objects. Later array entries win for the same NPC.
func (m *NPCMemory) UnmarshalJSON(data []byte) error {
	var asMap map[string]string
	if err := json.Unmarshal(data, &asMap); err == nil {
		*m = asMap
		return nil
	}
	var asArray []NPCMemoryEntry
	if err := json.Unmarshal(data, &asArray); err == nil {
		*m = MemoriesFromEntries(asArray)
		return nil
	}
	return fmt.Errorf("npc_memory: not a map or array: %s", string(data))
}

// MemoriesFromEntries folds list-form memories into a map. Entries without
// a name are skipped.
func MemoriesFromEntries(entries []NPCMemoryEntry) NPCMemory {
	result := make(NPCMemory, len(entries))
	for _, e := range entries {
		if e.NPCName == "" {
			continue
		}
		result[e.NPCName] = e.Memory
	}
	return result
}
