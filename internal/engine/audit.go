package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Earnest-Williams/roomlife/internal/action"
	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// Audit finding kinds.
const (
	AuditUnreachable     = "unreachable"
	AuditDegenerateTiers = "degenerate_tiers"
)

// AuditFinding is one playability problem surfaced by the content audit.
type AuditFinding struct {
	ActionID string `json:"action_id"`
	Kind     string `json:"kind"`
	Detail   string `json:"detail"`
}

// auditSeed fixes the jitter draws so audit output is stable run to run.
const auditSeed = 12345

// AuditContent checks loaded content for playability problems the static
// integrity pass cannot see: actions that no plausible player state can
// reach from any space, and tier distributions that collapse onto a single
// tier for a mid-skill player. Findings are advisory; content that audits
// dirty still loads and plays.
func AuditContent(actions map[string]*content.ActionSpec, items map[string]*content.ItemMeta, spaces map[string]*content.SpaceSpec) []AuditFinding {
	exec := action.New(actions, items, zap.NewNop())
	archetypes := auditArchetypes(spaces, items, exec)

	spaceIDs := make([]string, 0, len(spaces))
	for id := range spaces {
		spaceIDs = append(spaceIDs, id)
	}
	sort.Strings(spaceIDs)

	var findings []AuditFinding
	for _, id := range exec.ActionIDs() {
		if f, unreachable := auditReachability(exec, archetypes, spaceIDs, id); unreachable {
			findings = append(findings, f)
			continue
		}
		if f, degenerate := auditTierRichness(exec, archetypes["stocked"], spaceIDs, id); degenerate {
			findings = append(findings, f)
		}
	}
	return findings
}

// auditArchetypes builds representative player states: a fresh start, a
// mid-skill player with savings, a broke player with pressing needs, a
// maxed-out veteran, and a mid-skill player whose inventory holds one of
// every item type so consumable requirements are satisfiable.
func auditArchetypes(spaces map[string]*content.SpaceSpec, items map[string]*content.ItemMeta, exec *action.Executor) map[string]*state.State {
	fresh := NewGame(spaces, exec, 123)

	skilled := NewGame(spaces, exec, 456)
	for _, s := range skilled.Player.Skills {
		s.Value = 50
	}
	skilled.Player.MoneyPence = 10000

	broke := NewGame(spaces, exec, 789)
	broke.Player.MoneyPence = 100
	broke.Player.Needs.Set("hunger", 80)
	broke.Player.Needs.Set("fatigue", 70)
	broke.Player.Needs.Set("hygiene", 80)

	master := NewGame(spaces, exec, 999)
	for _, s := range master.Player.Skills {
		s.Value = 100
	}
	master.Player.MoneyPence = 50000

	stocked := NewGame(spaces, exec, 456)
	for _, s := range stocked.Player.Skills {
		s.Value = 50
	}
	stocked.Player.MoneyPence = 10000
	itemIDs := make([]string, 0, len(items))
	for id := range items {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)
	rng := rand.New(rand.NewSource(auditSeed))
	for _, id := range itemIDs {
		stocked.Items = append(stocked.Items, &state.Item{
			InstanceID:     state.NewInstanceID(rng),
			ItemID:         id,
			PlacedIn:       state.PlacedInInventory,
			Quality:        1.0,
			ConditionValue: 100,
			Condition:      state.ConditionPristine,
			Bulk:           0,
		})
	}

	return map[string]*state.State{
		"fresh_start": fresh,
		"skilled":     skilled,
		"broke":       broke,
		"master":      master,
		"stocked":     stocked,
	}
}

// auditReachability reports an action unreachable when no archetype passes
// validation from any space. Missing caller parameters do not count against
// reachability; they describe the call, not the world.
func auditReachability(exec *action.Executor, archetypes map[string]*state.State, spaceIDs []string, actionID string) (AuditFinding, bool) {
	names := make([]string, 0, len(archetypes))
	for name := range archetypes {
		names = append(names, name)
	}
	sort.Strings(names)

	var blockers map[string]bool
	for _, name := range names {
		st := archetypes[name]
		home := st.World.Location
		for _, spaceID := range spaceIDs {
			st.World.Location = spaceID
			v, err := exec.Validate(st, action.NewCall(actionID))
			if err != nil {
				continue
			}
			missing := worldBlockers(v.Missing)
			if len(missing) == 0 {
				st.World.Location = home
				return AuditFinding{}, false
			}
			if blockers == nil {
				blockers = make(map[string]bool)
				for _, m := range missing {
					blockers[m] = true
				}
			} else {
				for m := range blockers {
					if !contains(missing, m) {
						delete(blockers, m)
					}
				}
			}
		}
		st.World.Location = home
	}

	common := make([]string, 0, len(blockers))
	for m := range blockers {
		common = append(common, m)
	}
	sort.Strings(common)
	return AuditFinding{
		ActionID: actionID,
		Kind:     AuditUnreachable,
		Detail:   fmt.Sprintf("no archetype can perform this anywhere; common blockers: %s", strings.Join(common, ", ")),
	}, true
}

// auditTierRichness samples the tier distribution for the stocked archetype
// at the first space where the action validates. A distribution is
// degenerate when a single tier occurs, or one tier takes more than 90% of
// the probability mass.
func auditTierRichness(exec *action.Executor, st *state.State, spaceIDs []string, actionID string) (AuditFinding, bool) {
	home := st.World.Location
	defer func() { st.World.Location = home }()

	for _, spaceID := range spaceIDs {
		st.World.Location = spaceID
		v, err := exec.Validate(st, action.NewCall(actionID))
		if err != nil || len(worldBlockers(v.Missing)) > 0 {
			continue
		}

		dist, err := exec.PreviewTierDistribution(st, st.Player, actionID, auditSeed, 9)
		if err != nil {
			return AuditFinding{}, false
		}
		tiers := 0
		maxProb := 0.0
		for _, p := range dist {
			if p > 0 {
				tiers++
			}
			if p > maxProb {
				maxProb = p
			}
		}
		switch {
		case tiers < 2:
			return AuditFinding{
				ActionID: actionID,
				Kind:     AuditDegenerateTiers,
				Detail:   "only one tier occurs for a mid-skill player",
			}, true
		case maxProb > 0.9:
			return AuditFinding{
				ActionID: actionID,
				Kind:     AuditDegenerateTiers,
				Detail:   fmt.Sprintf("a single tier takes %.0f%% of outcomes for a mid-skill player", maxProb*100),
			}, true
		}
		return AuditFinding{}, false
	}
	return AuditFinding{}, false
}

// worldBlockers filters out missing-parameter entries: the audit validates
// bare calls, so absent caller parameters are expected.
func worldBlockers(missing []string) []string {
	var out []string
	for _, m := range missing {
		if strings.HasPrefix(m, "missing param: ") {
			continue
		}
		out = append(out, m)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
