package state

// PlacedInInventory is the placement value for carried items.
const PlacedInInventory = "inventory"

// Condition labels in descending order of condition value.
const (
	ConditionPristine = "pristine"
	ConditionUsed     = "used"
	ConditionWorn     = "worn"
	ConditionBroken   = "broken"
	ConditionFilthy   = "filthy"
)

// Item is one concrete item instance. Many instances may share an item type
// id; capabilities and durability defaults live on the type's metadata. An
// item has exactly one owner at a time, expressed through PlacedIn.
type Item struct {
	InstanceID     string  `json:"instance_id"`
	ItemID         string  `json:"item_id"`
	PlacedIn       string  `json:"placed_in"`
	Slot           string  `json:"slot"`
	Quality        float64 `json:"quality"`
	Condition      string  `json:"condition"`
	ConditionValue int     `json:"condition_value"`
	Bulk           int     `json:"bulk"`
}

// UpdateCondition refreshes the condition label from the condition value.
func (it *Item) UpdateCondition() {
	switch {
	case it.ConditionValue >= 90:
		it.Condition = ConditionPristine
	case it.ConditionValue >= 70:
		it.Condition = ConditionUsed
	case it.ConditionValue >= 40:
		it.Condition = ConditionWorn
	case it.ConditionValue >= 20:
		it.Condition = ConditionBroken
	default:
		it.Condition = ConditionFilthy
	}
}

// Degrade reduces condition by the base amount. Items already below 40
// degrade half again as fast. Condition never drops below zero.
func (it *Item) Degrade(base int) {
	amount := base
	if it.ConditionValue < 40 {
		amount = (base*3 + 1) / 2
	}
	it.ConditionValue -= amount
	if it.ConditionValue < 0 {
		it.ConditionValue = 0
	}
	it.UpdateCondition()
}
