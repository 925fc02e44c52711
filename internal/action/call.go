package action

import "github.com/Earnest-Williams/roomlife/internal/state"

// ItemRef identifies an item either by exact instance or by type. When only
// the type is given, the engine selects an instance deterministically.
type ItemRef struct {
	InstanceID string `json:"instance_id,omitempty"`
	ItemID     string `json:"item_id,omitempty"`
}

// Call binds an action id to resolved parameter values for one invocation.
// Calls are ephemeral; they are never persisted beyond the event log.
type Call struct {
	ActionID string
	Params   map[string]any
}

// NewCall builds a call with no parameters.
func NewCall(actionID string) Call {
	return Call{ActionID: actionID, Params: map[string]any{}}
}

// WithParam returns a copy of the call with one parameter set. Values are
// strings for space_id/string parameters and ItemRef for item_ref ones.
func (c Call) WithParam(name string, value any) Call {
	params := make(map[string]any, len(c.Params)+1)
	for k, v := range c.Params {
		params[k] = v
	}
	params[name] = value
	return Call{ActionID: c.ActionID, Params: params}
}

// ItemRefParam extracts an ItemRef parameter, if present and well-typed.
func (c Call) ItemRefParam(name string) (ItemRef, bool) {
	v, ok := c.Params[name]
	if !ok {
		return ItemRef{}, false
	}
	ref, ok := v.(ItemRef)
	return ref, ok
}

// StringParam extracts a string parameter, if present and well-typed.
func (c Call) StringParam(name string) (string, bool) {
	v, ok := c.Params[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// resolveItemRef finds the item instance a reference points at. An explicit
// instance id always wins. A by-type reference selects among reachable
// instances, preferring the highest condition value so type references
// behave the same way everywhere.
func resolveItemRef(st *state.State, ref ItemRef) *state.Item {
	if ref.InstanceID != "" {
		return st.ItemByInstance(ref.InstanceID)
	}
	if ref.ItemID == "" {
		return nil
	}
	var best *state.Item
	for _, it := range st.Items {
		if it.ItemID != ref.ItemID || !st.IsReachable(it) {
			continue
		}
		if best == nil || it.ConditionValue > best.ConditionValue {
			best = it
		}
	}
	return best
}
