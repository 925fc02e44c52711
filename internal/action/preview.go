package action

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// Preview describes what an action is likely to do without running it.
// Nothing here mutates state.
type Preview struct {
	ActionID         string              `json:"action_id"`
	Valid            bool                `json:"valid"`
	Missing          []string            `json:"missing,omitempty"`
	TierDistribution map[int]float64     `json:"tier_distribution"`
	DeltaRanges      map[string]IntRange `json:"delta_ranges,omitempty"`
	Notes            []string            `json:"notes,omitempty"`
}

// IntRange is the min/max envelope of a delta across possible tiers.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PreviewTierDistribution samples the scorer across distinct jitter draws
// and reports the fraction of samples landing on each tier. Only jitter
// varies between samples, so the spread reflects the action's real variance
// at the actor's current stats.
func (e *Executor) PreviewTierDistribution(st *state.State, actor state.Stats, actionID string, seed int64, samples int) (map[int]float64, error) {
	spec, ok := e.actions[actionID]
	if !ok {
		return nil, fmt.Errorf("unknown action: %s", actionID)
	}
	if samples <= 0 {
		samples = 9
	}

	counts := map[int]int{}
	for i := 0; i < samples; i++ {
		rng := rand.New(rand.NewSource(subSeed(seed+int64(i), st.World.Day, st.SliceIndex(), st.World.Location, spec.ID)))
		b := computeTier(st, actor, spec, e.items, rng)
		counts[b.Tier]++
	}

	dist := make(map[int]float64, len(counts))
	for tier, n := range counts {
		dist[tier] = float64(n) / float64(samples)
	}
	return dist, nil
}

// PreviewAction builds the full read-only preview: validation status, tier
// spread, the envelope of need and money deltas across defined tiers, and
// contextual notes about equipment.
func (e *Executor) PreviewAction(st *state.State, call Call, seed int64, samples int) (*Preview, error) {
	spec, ok := e.actions[call.ActionID]
	if !ok {
		return nil, fmt.Errorf("unknown action: %s", call.ActionID)
	}

	v := validateSpec(st, spec, e.items, call)
	p := &Preview{
		ActionID: spec.ID,
		Valid:    v.OK,
		Missing:  v.Missing,
	}

	dist, err := e.PreviewTierDistribution(st, st.Player, call.ActionID, seed, samples)
	if err != nil {
		return nil, err
	}
	p.TierDistribution = dist
	p.DeltaRanges = deltaRanges(spec)
	p.Notes = previewNotes(st, spec, e.items)
	return p, nil
}

func deltaRanges(spec *content.ActionSpec) map[string]IntRange {
	ranges := map[string]IntRange{}
	record := func(key string, value int) {
		r, seen := ranges[key]
		if !seen {
			ranges[key] = IntRange{Min: value, Max: value}
			return
		}
		if value < r.Min {
			r.Min = value
		}
		if value > r.Max {
			r.Max = value
		}
		ranges[key] = r
	}
	for _, outcome := range spec.Outcomes {
		for need, delta := range outcome.Deltas.Needs {
			record(need, delta)
		}
		if outcome.Deltas.MoneyPence != 0 {
			record("money_pence", outcome.Deltas.MoneyPence)
		}
	}
	return ranges
}

// previewNotes explains the equipment side of a score: which provider would
// be used per weighted capability, or that none is reachable.
func previewNotes(st *state.State, spec *content.ActionSpec, meta map[string]*content.ItemMeta) []string {
	if len(spec.Modifiers.ItemProvidesWeights) == 0 {
		return nil
	}
	capabilities := make([]string, 0, len(spec.Modifiers.ItemProvidesWeights))
	for capability := range spec.Modifiers.ItemProvidesWeights {
		capabilities = append(capabilities, capability)
	}
	sort.Strings(capabilities)

	var notes []string
	for _, capability := range capabilities {
		it := bestProvider(st, meta, capability)
		if it == nil {
			notes = append(notes, fmt.Sprintf("no reachable item provides %s", capability))
			continue
		}
		notes = append(notes, fmt.Sprintf("using %s (%s) for %s", it.ItemID, it.Condition, capability))
	}
	return notes
}
