package content

import (
	"fmt"
	"sort"
	"strings"
)

// Issue severities.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

// Issue codes.
const (
	CodeMissingBaselineOutcome = "missing_baseline_outcome"
	CodeMissingFloorOutcome    = "missing_floor_outcome"
	CodeTierFloorOutOfRange    = "tier_floor_out_of_range"
	CodeUnknownParamType       = "unknown_parameter_type"
	CodeUnprovidableCapability = "unprovidable_capability"
	CodeUnknownGrantItem       = "unknown_grant_item"
	CodeUnknownConsumeItem     = "unknown_consume_item"
	CodeNegativeConsume        = "negative_consume"
)

// Issue is one finding from the content integrity pass.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	ActionID string   `json:"action_id,omitempty"`
	Message  string   `json:"message"`
}

// Report collects integrity findings across a content set.
type Report struct {
	Issues []Issue `json:"issues"`
}

// Err returns a single error summarizing all error-severity issues, or nil
// when the content is deployable.
func (r *Report) Err() error {
	var lines []string
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			lines = append(lines, issue.Message)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return fmt.Errorf("content integrity check failed:\n%s", strings.Join(lines, "\n"))
}

func (r *Report) add(severity Severity, code, actionID, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Code:     code,
		ActionID: actionID,
		Message:  fmt.Sprintf(format, args...),
	})
}

// CheckIntegrity statically validates a content set so that content-author
// mistakes surface at load time instead of as runtime faults. Every rule
// here has a matching loud runtime check; this pass exists so violating
// content never ships.
func CheckIntegrity(actions map[string]*ActionSpec, items map[string]*ItemMeta) *Report {
	report := &Report{}

	// Capability index: which capabilities can any item type provide.
	providers := make(map[string][]string)
	for _, meta := range items {
		for _, p := range meta.Provides {
			providers[p] = append(providers[p], meta.ID)
		}
	}

	ids := make([]string, 0, len(actions))
	for id := range actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		spec := actions[id]

		floor := spec.TierFloor()
		if floor < 0 || floor > 3 {
			report.add(SeverityError, CodeTierFloorOutOfRange, id,
				"%s: tier_floor %d out of range [0,3]", id, floor)
		}

		// Every tier the scorer can land on needs an authored outcome.
		// The floor cuts off lower tiers; nothing caps the top, so the
		// reachable range is [floor, 3]. A gap here would otherwise only
		// surface as a runtime integrity fault.
		if floor >= 0 && floor <= 3 {
			for tier := floor; tier <= 3; tier++ {
				if _, ok := spec.Outcomes[tier]; !ok {
					code := CodeMissingBaselineOutcome
					if tier == 0 {
						code = CodeMissingFloorOutcome
					}
					report.add(SeverityError, code, id,
						"%s: tier %d is reachable but has no outcome defined", id, tier)
				}
			}
		}

		for _, param := range spec.Parameters {
			if !SupportedParamTypes[param.Type] {
				report.add(SeverityError, CodeUnknownParamType, id,
					"%s: parameter %q has unknown type %q", id, param.Name, param.Type)
			}
		}

		// A required capability no item type provides can never be
		// satisfied; the action is unreachable by construction.
		for _, capability := range spec.Requires.Items.AnyProvides {
			if len(providers[capability]) == 0 {
				report.add(SeverityError, CodeUnprovidableCapability, id,
					"%s: requires.items.any_provides %q has no providing item type", id, capability)
			}
		}
		for _, capability := range spec.Requires.Items.AllProvides {
			if len(providers[capability]) == 0 {
				report.add(SeverityError, CodeUnprovidableCapability, id,
					"%s: requires.items.all_provides %q has no providing item type", id, capability)
			}
		}

		for tier, outcome := range spec.Outcomes {
			for _, grant := range outcome.Grants.Items {
				if _, ok := items[grant.ItemID]; !ok {
					report.add(SeverityError, CodeUnknownGrantItem, id,
						"%s: tier %d grants unknown item type %q", id, tier, grant.ItemID)
				}
			}
		}

		if spec.Consumes != nil {
			if spec.Consumes.MoneyPence < 0 {
				report.add(SeverityError, CodeNegativeConsume, id,
					"%s: consumes.money_pence must not be negative", id)
			}
			for _, inv := range spec.Consumes.InventoryItems {
				if _, ok := items[inv.ItemID]; !ok {
					report.add(SeverityError, CodeUnknownConsumeItem, id,
						"%s: consumes unknown item type %q", id, inv.ItemID)
				}
				if inv.Quantity < 0 {
					report.add(SeverityError, CodeNegativeConsume, id,
						"%s: consumes.inventory_items[%s].quantity must not be negative", id, inv.ItemID)
				}
			}
			for _, dur := range spec.Consumes.ItemDurability {
				if len(providers[dur.Provides]) == 0 {
					// Soft debits on unprovidable capabilities are dead
					// content but not dangerous; warn instead of block
					// unless the capability is also a hard requirement.
					severity := SeverityWarn
					if spec.Requires.Items.RequiresCapability(dur.Provides) {
						severity = SeverityError
					}
					report.add(severity, CodeUnprovidableCapability, id,
						"%s: consumes durability on capability %q with no providing item type", id, dur.Provides)
				}
			}
		}
	}

	return report
}
