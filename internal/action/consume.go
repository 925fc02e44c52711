package action

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

// consumePlan is the resolved set of debits an action will apply. Planning
// touches no state; commit applies everything in one pass. A hard failure
// during planning therefore leaves the world byte-for-byte unchanged.
type consumePlan struct {
	moneyPence int
	removals   []*state.Item
	wear       []wearEntry
}

type wearEntry struct {
	item   *state.Item
	amount int
}

// planConsumes resolves every debit an action declares against current
// state. Money and inventory-item debits are always hard. Durability debits
// are hard only when the capability also appears in the action's item
// requirements; an optional capability with no surviving provider is skipped
// with a log line instead of failing the whole action.
func planConsumes(st *state.State, spec *content.ActionSpec, meta map[string]*content.ItemMeta, call Call, logger *zap.Logger) (*consumePlan, error) {
	plan := &consumePlan{}
	if spec.Consumes == nil {
		return plan, nil
	}
	c := spec.Consumes

	if c.MoneyPence > 0 {
		if st.Player.MoneyPence < c.MoneyPence {
			return nil, &ConsumeError{
				ActionID: spec.ID,
				Resource: "money",
				Detail:   fmt.Sprintf("insufficient funds: need %dp, have %dp", c.MoneyPence, st.Player.MoneyPence),
			}
		}
		plan.moneyPence = c.MoneyPence
	}

	claimed := map[string]bool{}
	for _, inv := range c.InventoryItems {
		quantity := inv.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		if countInventory(st, inv.ItemID) < quantity {
			return nil, &ConsumeError{
				ActionID: spec.ID,
				Resource: "item:" + inv.ItemID,
				Detail:   fmt.Sprintf("need %d in inventory, have %d", quantity, countInventory(st, inv.ItemID)),
			}
		}
		for i := 0; i < quantity; i++ {
			it := pickWorstInventory(st, inv.ItemID, claimed)
			if it == nil {
				return nil, &ConsumeError{
					ActionID: spec.ID,
					Resource: "item:" + inv.ItemID,
					Detail:   "inventory instance disappeared during planning",
				}
			}
			claimed[it.InstanceID] = true
			plan.removals = append(plan.removals, it)
		}
	}

	for _, dur := range c.ItemDurability {
		it := durabilityTarget(st, meta, call, spec, dur.Provides)
		if it == nil {
			if spec.Requires.Items.RequiresCapability(dur.Provides) {
				return nil, &ConsumeError{
					ActionID: spec.ID,
					Resource: "capability:" + dur.Provides,
					Detail:   "no reachable provider to degrade",
				}
			}
			if logger != nil {
				logger.Info("skipping optional durability consume",
					zap.String("action_id", spec.ID),
					zap.String("provides", dur.Provides))
			}
			continue
		}
		plan.wear = append(plan.wear, wearEntry{item: it, amount: dur.Amount})
	}

	return plan, nil
}

// commit applies the planned debits. It cannot fail: everything was checked
// during planning and nothing else mutates state between the two phases.
func (p *consumePlan) commit(st *state.State) {
	st.Player.MoneyPence -= p.moneyPence
	for _, it := range p.removals {
		st.RemoveItem(it.InstanceID)
	}
	for _, w := range p.wear {
		w.item.Degrade(w.amount)
	}
}

// durabilityTarget picks which instance absorbs a durability debit. An
// item_ref parameter resolving to an item that provides the capability
// wins, whether it names an instance or a type; otherwise the most-damaged
// reachable provider is spent, the mirror of the best-provider rule used
// when scoring.
func durabilityTarget(st *state.State, meta map[string]*content.ItemMeta, call Call, spec *content.ActionSpec, provides string) *state.Item {
	for _, p := range spec.Parameters {
		if p.Type != content.ParamTypeItemRef {
			continue
		}
		ref, ok := call.ItemRefParam(p.Name)
		if !ok {
			continue
		}
		it := resolveItemRef(st, ref)
		if it == nil {
			continue
		}
		if m, found := meta[it.ItemID]; found && m.ProvidesCapability(provides) {
			return it
		}
	}
	return worstProvider(st, meta, provides)
}

// pickWorstInventory is worstInventoryInstance less instances already
// claimed by earlier entries of the same plan.
func pickWorstInventory(st *state.State, itemID string, claimed map[string]bool) *state.Item {
	var worst *state.Item
	for _, it := range st.Items {
		if it.PlacedIn != state.PlacedInInventory || it.ItemID != itemID || claimed[it.InstanceID] {
			continue
		}
		if worst == nil || it.ConditionValue < worst.ConditionValue {
			worst = it
		}
	}
	return worst
}
