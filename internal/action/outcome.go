package action

import (
	"fmt"
	"math/rand"

	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/social"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// healthPenaltyThreshold is the health value below which skill gains are
// scaled down, bottoming out at half rate when health reaches zero.
const healthPenaltyThreshold = 50

// applyOutcome mutates state with the effects authored for the resolved
// tier. The outcome for a floored tier is guaranteed to exist by the load
// time integrity check; a miss here means content changed underneath a
// running process, so it fails loudly rather than substituting a neighbor
// tier.
func applyOutcome(st *state.State, spec *content.ActionSpec, tier int, meta map[string]*content.ItemMeta, call Call, rng *rand.Rand) error {
	outcome, ok := spec.Outcomes[tier]
	if !ok {
		return &IntegrityError{
			ActionID: spec.ID,
			Detail:   fmt.Sprintf("no outcome defined for tier %d", tier),
		}
	}

	// Sorted iteration keeps the emitted event order and any shared
	// aptitude feedback identical across runs of the same resolution.
	for _, need := range sortedKeys(outcome.Deltas.Needs) {
		st.Player.Needs.Apply(need, outcome.Deltas.Needs[need])
	}
	st.Player.MoneyPence += outcome.Deltas.MoneyPence

	for _, skill := range sortedKeys(outcome.Deltas.SkillsXP) {
		gained := gainSkillXP(st, skill, outcome.Deltas.SkillsXP[skill])
		st.Log("skill.gain", map[string]any{"skill": skill, "xp": gained})
	}

	for _, flag := range sortedKeys(outcome.Deltas.Flags) {
		st.Player.Flags[flag] += outcome.Deltas.Flags[flag]
	}

	for _, grant := range outcome.Grants.Items {
		quantity := grant.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		placedIn := grant.PlacedIn
		if placedIn == "" {
			placedIn = st.World.Location
		}
		slot := grant.Slot
		if slot == "" {
			slot = "floor"
		}
		quality := 1.0
		bulk := 1
		if m, found := meta[grant.ItemID]; found {
			if m.Quality > 0 {
				quality = m.Quality
			}
			if m.Bulk > 0 {
				bulk = m.Bulk
			}
		}
		for i := 0; i < quantity; i++ {
			st.Items = append(st.Items, &state.Item{
				InstanceID:     state.NewInstanceID(rng),
				ItemID:         grant.ItemID,
				PlacedIn:       placedIn,
				Slot:           slot,
				Quality:        quality,
				Condition:      state.ConditionPristine,
				ConditionValue: 100,
				Bulk:           bulk,
			})
		}
	}

	for _, ev := range outcome.Events {
		st.Log(ev.ID, ev.Params)
	}

	if outcome.Social != nil {
		targetID := social.PlayerID
		if t, ok := call.StringParam("target"); ok {
			targetID = t
		}
		social.ApplyEffects(st, social.PlayerID, targetID, spec.ID, tier,
			outcome.Social.RelToTarget, outcome.Social.RelToActorOnTarget, outcome.Social.MemoryTag)
	}

	return nil
}

// gainSkillXP applies learning gain to a player skill. Curiosity speeds
// learning by up to 30%, poor health slows it, and a fraction of every gain
// feeds back into the governing aptitude so long practice compounds.
func gainSkillXP(st *state.State, skillName string, gain float64) float64 {
	skill, ok := st.Player.Skills[skillName]
	if !ok {
		skill = &state.Skill{Value: 0, RustRate: 0.02}
		st.Player.Skills[skillName] = skill
	}

	curiosityMod := 1.0 + (float64(st.Player.Traits.Get("curiosity"))/100.0)*0.3
	actual := gain * curiosityMod * healthPenalty(st)
	skill.Value += actual
	if skill.Value > 100 {
		skill.Value = 100
	}
	skill.LastTick = st.CurrentTick()

	if aptName, found := state.SkillToAptitude[skillName]; found {
		st.Player.Aptitudes.Add(aptName, actual*0.002)
	}
	return actual
}

// healthPenalty scales skill gains by current health: full rate at or above
// the threshold, linearly down to half rate at zero health.
func healthPenalty(st *state.State) float64 {
	health, _ := st.Player.Needs.Get("health")
	if health >= healthPenaltyThreshold {
		return 1.0
	}
	return 0.5 + (float64(health)/healthPenaltyThreshold)*0.5
}
