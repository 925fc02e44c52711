package action

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// sortedKeys returns a map's keys in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Tier thresholds for the raw competence score.
const (
	tierFairThreshold = 25.0
	tierGoodThreshold = 55.0
	tierBestThreshold = 85.0
)

// jitterSpan is the width of the uniform noise band added to every score.
// Half above, half below, so jitter alone never biases outcomes.
const jitterSpan = 16.0

// subSeed derives a per-call RNG seed. Every input that distinguishes one
// resolution from another feeds the hash, so two calls on the same day,
// slice, location and action replay identically while anything else moves
// the jitter. Go's maphash is randomized per process, so FNV-1a is used
// instead to keep seeds stable across runs and saves.
func subSeed(worldSeed int64, day, sliceIdx int, location, actionID string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%d|%d|%s|%s", worldSeed, day*97, sliceIdx, location, actionID)
	return int64(h.Sum64())
}

// scoreBreakdown records each contribution to a computed tier so previews
// and tests can inspect where a score came from.
type scoreBreakdown struct {
	Base      float64
	Secondary float64
	Traits    float64
	Items     float64
	Jitter    float64
	Raw       float64
	Tier      int
}

func (b scoreBreakdown) total() float64 {
	return b.Base + b.Secondary + b.Traits + b.Items + b.Jitter
}

// computeTier scores an action for the given actor and maps the score onto
// the outcome tiers. The actor is passed explicitly so the same machinery
// scores the player or any other character without mutating shared state.
func computeTier(st *state.State, actor state.Stats, spec *content.ActionSpec, meta map[string]*content.ItemMeta, rng *rand.Rand) scoreBreakdown {
	mods := spec.Modifiers
	var b scoreBreakdown

	if mods.PrimarySkill != "" {
		b.Base = actor.SkillValue(mods.PrimarySkill) * actor.AptitudeValue(mods.PrimarySkill)
	}
	// Sorted iteration keeps the float sums bit-identical for identical
	// inputs; map order would make scores merely ULP-stable.
	for _, skill := range sortedKeys(mods.SecondarySkills) {
		b.Secondary += mods.SecondarySkills[skill] * actor.SkillValue(skill)
	}
	for _, trait := range sortedKeys(mods.Traits) {
		b.Traits += mods.Traits[trait] * float64(actor.TraitValue(trait))
	}
	for _, capability := range sortedKeys(mods.ItemProvidesWeights) {
		if it := bestProvider(st, meta, capability); it != nil {
			b.Items += (float64(it.ConditionValue)*0.7 + it.Quality*10.0) * mods.ItemProvidesWeights[capability]
		}
	}
	b.Jitter = (rng.Float64() - 0.5) * jitterSpan

	b.Raw = b.total()
	raw := tierFor(b.Raw)
	floor := spec.TierFloor()
	if raw < floor {
		b.Tier = floor
	} else {
		b.Tier = raw
	}
	return b
}

func tierFor(score float64) int {
	switch {
	case score < tierFairThreshold:
		return 0
	case score < tierGoodThreshold:
		return 1
	case score < tierBestThreshold:
		return 2
	default:
		return 3
	}
}
