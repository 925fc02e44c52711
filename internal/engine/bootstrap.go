package engine

import (
	"math/rand"

	"github.com/Earnest-Williams/roomlife/internal/action"
	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// starterItems are the furnishings a new tenancy begins with. They start
// worn so early play has a reason to maintain and replace things.
var starterItems = []struct {
	itemID         string
	conditionValue int
	placedIn       string
	slot           string
}{
	{"bed_basic", 50, "room_001", "floor"},
	{"desk_worn", 45, "room_001", "wall"},
	{"kettle", 50, "kitchen_001", "counter"},
}

// NewGame bootstraps a fresh state: spaces from content, worn starter items
// with seed-deterministic instance ids, and the building's three contacts
// at neutral standing.
func NewGame(spaces map[string]*content.SpaceSpec, exec *action.Executor, seed int64) *state.State {
	st := state.New()
	st.World.Seed = seed
	rng := rand.New(rand.NewSource(seed))

	for _, spec := range spaces {
		st.Spaces[spec.ID] = &state.Space{
			SpaceID:            spec.ID,
			Name:               spec.Name,
			Kind:               spec.Kind,
			BaseTemperatureC:   spec.BaseTemperatureC,
			HasWindow:          spec.HasWindow,
			Connections:        spec.Connections,
			Tags:               spec.Tags,
			Fixtures:           spec.Fixtures,
			UtilitiesAvailable: spec.UtilitiesAvailable,
		}
	}

	for _, si := range starterItems {
		quality := 1.0
		bulk := 1
		if m, ok := exec.ItemMeta(si.itemID); ok {
			if m.Quality > 0 {
				quality = m.Quality
			}
			if m.Bulk > 0 {
				bulk = m.Bulk
			}
		}
		it := &state.Item{
			InstanceID:     state.NewInstanceID(rng),
			ItemID:         si.itemID,
			PlacedIn:       si.placedIn,
			Slot:           si.slot,
			Quality:        quality,
			ConditionValue: si.conditionValue,
			Bulk:           bulk,
		}
		it.UpdateCondition()
		st.Items = append(st.Items, it)
	}

	for _, npc := range []*state.NPC{
		state.NewNPC("npc_neighbor_nina", "Nina", "neighbor"),
		state.NewNPC("npc_landlord_park", "Mr. Park", "landlord"),
		state.NewNPC("npc_maint_lee", "Lee", "maintenance"),
	} {
		st.NPCs[npc.ID] = npc
		st.Player.Relationships[npc.ID] = 0
	}

	st.Log("game.new", map[string]any{"seed": seed})
	return st
}
