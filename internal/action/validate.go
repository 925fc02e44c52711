package action

import (
	"fmt"

	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// Validation is the machine-readable result of a precondition check. The
// Missing list is suitable for driving UI directly.
type Validation struct {
	OK      bool     `json:"ok"`
	Reason  string   `json:"reason,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// validateSpec checks every precondition of an action against current state.
// It is pure and read-only: safe to call repeatedly, and the executor calls
// it again immediately before execution because state may have drifted since
// the caller's own pre-flight check.
//
// All missing requirements are collected rather than stopping at the first,
// so a player sees everything blocking an action at once.
func validateSpec(st *state.State, spec *content.ActionSpec, meta map[string]*content.ItemMeta, call Call) Validation {
	var missing []string
	req := spec.Requires

	// Location.
	space := st.Spaces[st.World.Location]
	if space == nil {
		missing = append(missing, "valid location")
	} else {
		if len(req.Location.AnySpaceTags) > 0 {
			ok := false
			for _, tag := range req.Location.AnySpaceTags {
				if space.HasTag(tag) {
					ok = true
					break
				}
			}
			if !ok {
				missing = append(missing, fmt.Sprintf("space tag any_of=%v", req.Location.AnySpaceTags))
			}
		}
		if req.Location.RequiresFixture != "" && !space.HasFixture(req.Location.RequiresFixture) {
			missing = append(missing, fmt.Sprintf("fixture %s", req.Location.RequiresFixture))
		}
	}

	// Utilities.
	for _, u := range req.Utilities.AllTrue {
		on := false
		switch u {
		case "power":
			on = st.Utilities.Power
		case "heat":
			on = st.Utilities.Heat
		case "water":
			on = st.Utilities.Water
		}
		if !on {
			missing = append(missing, fmt.Sprintf("utility %s=on", u))
		}
	}

	// Money.
	if req.MoneyPence != nil && st.Player.MoneyPence < *req.MoneyPence {
		missing = append(missing, fmt.Sprintf("need %dp (have %dp)", *req.MoneyPence, st.Player.MoneyPence))
	}

	// Items by capability.
	if len(req.Items.AnyProvides) > 0 {
		ok := false
		for _, capability := range req.Items.AnyProvides {
			if bestProvider(st, meta, capability) != nil {
				ok = true
				break
			}
		}
		if !ok {
			missing = append(missing, fmt.Sprintf("item provides any_of=%v", req.Items.AnyProvides))
		}
	}
	for _, capability := range req.Items.AllProvides {
		if bestProvider(st, meta, capability) == nil {
			missing = append(missing, fmt.Sprintf("item provides %s", capability))
		}
	}
	for _, itemID := range req.Items.HasItemIDs {
		found := false
		for _, it := range st.Items {
			if it.ItemID == itemID && st.IsReachable(it) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, fmt.Sprintf("need item %s", itemID))
		}
	}

	// Skill minimums.
	for skill, min := range req.SkillsMin {
		if st.Player.SkillValue(skill) < min {
			missing = append(missing, fmt.Sprintf("skill %s>=%g", skill, min))
		}
	}

	// Declared parameters.
	missing = append(missing, validateParams(st, spec, call)...)

	if len(missing) > 0 {
		return Validation{OK: false, Reason: "missing requirements", Missing: missing}
	}
	return Validation{OK: true}
}

// validateParams resolves each declared parameter against current state. An
// unrecognized parameter type is itself a content error and is reported
// rather than silently accepted.
func validateParams(st *state.State, spec *content.ActionSpec, call Call) []string {
	var missing []string

	for _, p := range spec.Parameters {
		value, present := call.Params[p.Name]
		if !present {
			if p.Required {
				missing = append(missing, fmt.Sprintf("missing param: %s", p.Name))
			}
			continue
		}

		switch p.Type {
		case content.ParamTypeSpaceID:
			id, ok := value.(string)
			if !ok {
				missing = append(missing, fmt.Sprintf("%s must be a space id", p.Name))
				continue
			}
			if _, exists := st.Spaces[id]; !exists {
				missing = append(missing, fmt.Sprintf("unknown space id: %s", id))
			}
		case content.ParamTypeItemRef:
			ref, ok := value.(ItemRef)
			if !ok {
				missing = append(missing, fmt.Sprintf("%s must be an item reference", p.Name))
				continue
			}
			missing = append(missing, validateItemRef(st, p, ref)...)
		case content.ParamTypeString:
			if _, ok := value.(string); !ok {
				missing = append(missing, fmt.Sprintf("%s must be a string", p.Name))
			}
		default:
			missing = append(missing, fmt.Sprintf("%s (unknown parameter type: %s)", p.Name, p.Type))
		}
	}

	return missing
}

func validateItemRef(st *state.State, p content.Parameter, ref ItemRef) []string {
	var missing []string

	var candidates []*state.Item
	switch {
	case ref.InstanceID != "":
		it := st.ItemByInstance(ref.InstanceID)
		if it == nil {
			return []string{fmt.Sprintf("unknown item instance: %s", ref.InstanceID)}
		}
		candidates = []*state.Item{it}
	case ref.ItemID != "":
		for _, it := range st.Items {
			if it.ItemID == ref.ItemID {
				candidates = append(candidates, it)
			}
		}
		if len(candidates) == 0 {
			return []string{fmt.Sprintf("no such item in world: %s", ref.ItemID)}
		}
	default:
		return []string{fmt.Sprintf("%s must name an instance or item type", p.Name)}
	}

	if p.Constraints.Reachable {
		ok := false
		for _, it := range candidates {
			if st.IsReachable(it) {
				ok = true
				break
			}
		}
		if !ok {
			missing = append(missing, fmt.Sprintf("%s must reference a reachable item", p.Name))
		}
	}
	if p.Constraints.InInventory {
		ok := false
		for _, it := range candidates {
			if it.PlacedIn == state.PlacedInInventory {
				ok = true
				break
			}
		}
		if !ok {
			missing = append(missing, fmt.Sprintf("%s must reference an inventory item", p.Name))
		}
	}

	return missing
}
