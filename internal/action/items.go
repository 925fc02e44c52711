package action

import (
	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// bestProvider finds the reachable item instance providing a capability with
// the highest combined condition and quality. Scoring uses this so the tier
// reflects the best tool available.
//
// Consumption deliberately uses worstProvider instead: the most-damaged copy
// is spent first to preserve valuable items. The asymmetry is covered by
// tests in score_test.go and consume_test.go.
func bestProvider(st *state.State, meta map[string]*content.ItemMeta, provides string) *state.Item {
	var best *state.Item
	bestScore := -1.0
	for _, it := range st.Items {
		if !st.IsReachable(it) {
			continue
		}
		m, ok := meta[it.ItemID]
		if !ok || !m.ProvidesCapability(provides) {
			continue
		}
		score := float64(it.ConditionValue) + it.Quality*10.0
		if score > bestScore {
			best = it
			bestScore = score
		}
	}
	return best
}

// worstProvider finds the reachable provider with the lowest condition value.
func worstProvider(st *state.State, meta map[string]*content.ItemMeta, provides string) *state.Item {
	var worst *state.Item
	for _, it := range st.Items {
		if !st.IsReachable(it) {
			continue
		}
		m, ok := meta[it.ItemID]
		if !ok || !m.ProvidesCapability(provides) {
			continue
		}
		if worst == nil || it.ConditionValue < worst.ConditionValue {
			worst = it
		}
	}
	return worst
}

// worstInventoryInstance finds the carried instance of an item type with the
// lowest condition value.
func worstInventoryInstance(st *state.State, itemID string) *state.Item {
	var worst *state.Item
	for _, it := range st.Items {
		if it.PlacedIn != state.PlacedInInventory || it.ItemID != itemID {
			continue
		}
		if worst == nil || it.ConditionValue < worst.ConditionValue {
			worst = it
		}
	}
	return worst
}

// countInventory counts carried instances of an item type.
func countInventory(st *state.State, itemID string) int {
	n := 0
	for _, it := range st.Items {
		if it.PlacedIn == state.PlacedInInventory && it.ItemID == itemID {
			n++
		}
	}
	return n
}
