// Package social manages relationships and interaction memories between the
// player and building NPCs. Relationship values are bounded to [-100, 100];
// memories are bounded FIFO lists so long games cannot grow without limit.
package social

import (
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// MemoryLimit caps how many interaction memories each party keeps.
const MemoryLimit = 100

// PlayerID is the reserved actor id for the player.
const PlayerID = "player"

// ClampRel clamps a relationship value to [-100, 100].
func ClampRel(value int) int {
	if value < -100 {
		return -100
	}
	if value > 100 {
		return 100
	}
	return value
}

// BumpRelationship shifts one party's relationship to another by delta.
func BumpRelationship(rels map[string]int, otherID string, delta int) {
	rels[otherID] = ClampRel(rels[otherID] + delta)
}

// AppendMemory appends an entry to a bounded memory list, evicting the
// oldest entries past the limit.
func AppendMemory(memory []state.MemoryEntry, entry state.MemoryEntry) []state.MemoryEntry {
	memory = append(memory, entry)
	if len(memory) > MemoryLimit {
		memory = memory[len(memory)-MemoryLimit:]
	}
	return memory
}

// resolve maps an actor id to its relationship map and memory slot.
func resolve(st *state.State, id string) (map[string]int, *[]state.MemoryEntry) {
	if id == PlayerID {
		return st.Player.Relationships, &st.Player.Memory
	}
	npc, ok := st.NPCs[id]
	if !ok {
		return nil, nil
	}
	return npc.Relationships, &npc.Memory
}

// ApplyEffects applies an outcome's social block: bidirectional relationship
// bumps plus a shared interaction memory for both parties. Unknown actor or
// target ids are ignored; social effects are best-effort decoration, never a
// reason to fail an already-committed action.
func ApplyEffects(st *state.State, actorID, targetID, actionID string, tier int, relToTarget, relToActorOnTarget int, memoryTag string) {
	actorRels, actorMemory := resolve(st, actorID)
	targetRels, targetMemory := resolve(st, targetID)
	if actorRels == nil || targetRels == nil {
		return
	}

	if relToTarget != 0 {
		BumpRelationship(actorRels, targetID, relToTarget)
	}
	if relToActorOnTarget != 0 {
		BumpRelationship(targetRels, actorID, relToActorOnTarget)
	}

	if memoryTag != "" {
		*actorMemory = AppendMemory(*actorMemory, state.MemoryEntry{
			Day:       st.World.Day,
			ActionID:  actionID,
			OtherID:   targetID,
			Tier:      tier,
			Tag:       memoryTag,
			Initiator: actorID,
		})
		*targetMemory = AppendMemory(*targetMemory, state.MemoryEntry{
			Day:       st.World.Day,
			ActionID:  actionID,
			OtherID:   actorID,
			Tier:      tier,
			Tag:       memoryTag,
			Initiator: actorID,
		})
	}

	st.Log("social.interaction", map[string]any{
		"actor_id":  actorID,
		"target_id": targetID,
		"action_id": actionID,
		"tier":      tier,
		"tag":       memoryTag,
	})
}
