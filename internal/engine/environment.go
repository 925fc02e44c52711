package engine

import "github.com/Earnest-Williams/roomlife/internal/state"

// Health system constants. Needs above the extreme threshold accumulate
// illness each turn; illness and injury recover naturally, injury slower.
const (
	extremeNeedThreshold = 80
	illnessPerExtreme    = 2
)

// traitDrift maps a habit counter to the trait it reinforces once the
// counter crosses the threshold. Counters reset on each promotion.
var traitDrift = []struct {
	habit   string
	trait   string
	message string
}{
	{"discipline", "discipline", "Your surroundings feel more orderly. Discipline is rising."},
	{"confidence", "confidence", "You feel more self-assured. Confidence is rising."},
	{"frugality", "frugality", "You're becoming more mindful of spending. Frugality is rising."},
	{"fitness", "fitness", "Your body feels stronger. Fitness is rising."},
}

const traitDriftThreshold = 80

// applyEnvironment runs the per-turn drift: skill rust, trait drift,
// utility effects, needs decay, energy recalculation, and the illness and
// injury model. Callers hold the session lock.
func (s *Session) applyEnvironment() {
	st := s.st
	s.applySkillRust()
	s.applyTraitDrift()

	n := &st.Player.Needs
	n.Apply("hunger", 8)
	n.Apply("fatigue", 6)

	if st.Utilities.Water {
		n.Apply("hygiene", -4)
	} else {
		n.Apply("hygiene", -8)
		n.Apply("mood", -2)
		st.Log("utility.no_water", nil)
	}
	if st.Utilities.Heat {
		n.Apply("warmth", 4)
	} else {
		n.Apply("warmth", -10)
		n.Apply("mood", -3)
		st.Log("utility.no_heat", nil)
	}
	if !st.Utilities.Power {
		n.Apply("mood", -2)
		st.Log("utility.no_power", nil)
	}

	// Energy follows fatigue, nudged by fitness. Fitness 50 is neutral.
	fatigue, _ := n.Get("fatigue")
	fitnessMod := float64(st.Player.Traits.Get("fitness")-50) * 0.2
	n.Set("energy", state.Clamp100(int(float64(100-fatigue)+fitnessMod)))

	s.applyHealth()
}

// applyHealth accumulates illness from extreme needs, applies natural
// recovery, and recomputes the derived health value.
func (s *Session) applyHealth() {
	st := s.st
	n := &st.Player.Needs

	var extreme []string
	for _, need := range []string{"hunger", "fatigue", "hygiene"} {
		if v, _ := n.Get(need); v > extremeNeedThreshold {
			extreme = append(extreme, need)
			n.Apply("illness", illnessPerExtreme)
		}
	}
	if v, _ := n.Get("stress"); v > extremeNeedThreshold {
		extreme = append(extreme, "stress")
		n.Apply("illness", illnessPerExtreme/2)
	}
	if v, _ := n.Get("warmth"); v < 20 {
		extreme = append(extreme, "cold")
		n.Apply("illness", illnessPerExtreme)
	}

	// Stoicism speeds illness recovery; fitness speeds injury recovery.
	// Injury heals at half the pace of illness, so it recovers on even
	// ticks only.
	if v, _ := n.Get("illness"); v > 0 {
		recovery := 1
		if st.Player.Traits.Get("stoicism") >= 50 {
			recovery = 2
		}
		n.Apply("illness", -recovery)
	}
	if v, _ := n.Get("injury"); v > 0 {
		if st.CurrentTick()%2 == 0 || st.Player.Traits.Get("fitness") >= 70 {
			n.Apply("injury", -1)
		}
	}

	illness, _ := n.Get("illness")
	injury, _ := n.Get("injury")
	health := state.Clamp100(100 - (illness+injury)/2)
	n.Set("health", health)

	if len(extreme) > 0 {
		st.Log("health.degradation", map[string]any{
			"extreme_needs": extreme,
			"illness":       illness,
			"injury":        injury,
		})
	}
	switch {
	case health < 30:
		st.Log("health.critical", map[string]any{"health": health})
	case health < 50:
		st.Log("health.warning", map[string]any{"health": health})
	}
}

// applySkillRust decays unused skills. Discipline damps the decay by up to
// 30% at trait 100.
func (s *Session) applySkillRust() {
	st := s.st
	tick := st.CurrentTick()
	damping := 1.0 - (float64(st.Player.Traits.Get("discipline"))/100.0)*0.3

	for _, skill := range st.Player.Skills {
		elapsed := tick - skill.LastTick
		if elapsed <= 0 || skill.Value <= 0 {
			continue
		}
		skill.Value -= skill.RustRate * float64(elapsed) * damping
		if skill.Value < 0 {
			skill.Value = 0
		}
		skill.LastTick = tick
	}
}

// applyTraitDrift promotes traits whose habit counters crossed the
// threshold, resetting the counter each time.
func (s *Session) applyTraitDrift() {
	st := s.st
	for _, d := range traitDrift {
		if st.Player.HabitTracker[d.habit] <= traitDriftThreshold {
			continue
		}
		current := st.Player.Traits.Get(d.trait)
		st.Player.Traits.Set(d.trait, state.Clamp100(current+1))
		st.Player.HabitTracker[d.habit] = 0
		st.Log("trait.drift", map[string]any{"message": d.message})
	}
}
