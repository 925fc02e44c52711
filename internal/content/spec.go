// Package content holds the typed, immutable representation of authored
// game rules: action specifications, item capability metadata, and space
// definitions. Everything here is loaded once at startup and never mutated
// at runtime.
package content

// ActionSpec defines one action's rules. The requirement and modifier
// blocks are strict typed structures validated at load time, so evaluation
// code never inspects loosely-shaped maps.
type ActionSpec struct {
	ID          string               `yaml:"id"`
	DisplayName string               `yaml:"display_name"`
	Description string               `yaml:"description"`
	Category    string               `yaml:"category"`
	TimeMinutes int                  `yaml:"time_minutes"`
	Requires    Requirements         `yaml:"requires"`
	Modifiers   Modifiers            `yaml:"modifiers"`
	Outcomes    map[int]OutcomeEntry `yaml:"outcomes"`
	Consumes    *Consumes            `yaml:"consumes"`
	Parameters  []Parameter          `yaml:"parameters"`
}

// TierFloor returns the minimum tier this action may produce. The default
// is 1: baseline actions cannot fail unless the author opts into tier 0.
func (a *ActionSpec) TierFloor() int {
	if a.Modifiers.TierFloor != nil {
		return *a.Modifiers.TierFloor
	}
	return 1
}

// Requirements are the hard preconditions checked before execution.
type Requirements struct {
	MoneyPence *int               `yaml:"money_pence"`
	Utilities  UtilityRequirement `yaml:"utilities"`
	Location   LocationRequirement `yaml:"location"`
	Items      ItemRequirements   `yaml:"items"`
	SkillsMin  map[string]float64 `yaml:"skills_min"`
}

// UtilityRequirement names utilities that must all be on.
type UtilityRequirement struct {
	AllTrue []string `yaml:"all_true"`
}

// LocationRequirement constrains where the action may run.
type LocationRequirement struct {
	AnySpaceTags    []string `yaml:"any_space_tags"`
	RequiresFixture string   `yaml:"requires_fixture"`
}

// ItemRequirements reference item capabilities, never concrete types.
// AnyProvides is satisfied by one reachable item providing any listed
// capability; AllProvides needs a provider per capability (instances need
// not be distinct).
type ItemRequirements struct {
	AnyProvides []string `yaml:"any_provides"`
	AllProvides []string `yaml:"all_provides"`
	HasItemIDs  []string `yaml:"has_item_ids"`
}

// Empty reports whether no item requirements are declared.
func (r ItemRequirements) Empty() bool {
	return len(r.AnyProvides) == 0 && len(r.AllProvides) == 0 && len(r.HasItemIDs) == 0
}

// RequiresCapability reports whether the given capability appears in either
// provides list. The consume resolver uses this to decide hard vs soft
// failure for durability debits.
func (r ItemRequirements) RequiresCapability(provides string) bool {
	for _, p := range r.AnyProvides {
		if p == provides {
			return true
		}
	}
	for _, p := range r.AllProvides {
		if p == provides {
			return true
		}
	}
	return false
}

// Modifiers shape the tier score without gating execution.
type Modifiers struct {
	PrimarySkill        string             `yaml:"primary_skill"`
	SecondarySkills     map[string]float64 `yaml:"secondary_skills"`
	Traits              map[string]float64 `yaml:"traits"`
	ItemProvidesWeights map[string]float64 `yaml:"item_provides_weights"`
	TierFloor           *int               `yaml:"tier_floor"`
}

// OutcomeEntry is the authored effect of one tier.
type OutcomeEntry struct {
	Deltas Deltas        `yaml:"deltas"`
	Grants Grants        `yaml:"grants"`
	Events []EventSpec   `yaml:"events"`
	Social *SocialEffect `yaml:"social"`
}

// Deltas are the state changes an outcome applies. Need deltas clamp to
// each field's 0-100 bound; money may go negative only through consumes,
// never through outcome deltas alone.
type Deltas struct {
	Needs      map[string]int     `yaml:"needs"`
	MoneyPence int                `yaml:"money_pence"`
	SkillsXP   map[string]float64 `yaml:"skills_xp"`
	Flags      map[string]int     `yaml:"flags"`
}

// Grants create new item instances when an outcome lands.
type Grants struct {
	Items []ItemGrant `yaml:"items"`
}

// ItemGrant creates quantity instances of an item type.
type ItemGrant struct {
	ItemID   string `yaml:"item_id"`
	Quantity int    `yaml:"quantity"`
	PlacedIn string `yaml:"placed_in"`
	Slot     string `yaml:"slot"`
}

// EventSpec emits a log event with fixed params.
type EventSpec struct {
	ID     string         `yaml:"id"`
	Params map[string]any `yaml:"params"`
}

// SocialEffect updates relationships and memories for an actor/target pair.
type SocialEffect struct {
	RelToTarget        int    `yaml:"rel_to_target"`
	RelToActorOnTarget int    `yaml:"rel_to_actor_on_target"`
	MemoryTag          string `yaml:"memory_tag"`
}

// Consumes declares the resources an action debits on execution.
type Consumes struct {
	MoneyPence     int                 `yaml:"money_pence"`
	InventoryItems []InventoryConsume  `yaml:"inventory_items"`
	ItemDurability []DurabilityConsume `yaml:"item_durability"`
}

// InventoryConsume removes carried item instances by type.
type InventoryConsume struct {
	ItemID   string `yaml:"item_id"`
	Quantity int    `yaml:"quantity"`
}

// DurabilityConsume degrades an item providing the named capability.
type DurabilityConsume struct {
	Provides string `yaml:"provides"`
	Amount   int    `yaml:"amount"`
}

// Parameter declares a typed input the caller must supply.
type Parameter struct {
	Name        string          `yaml:"name"`
	Type        string          `yaml:"type"`
	Required    bool            `yaml:"required"`
	Constraints ParamConstraint `yaml:"constraints"`
}

// Supported parameter types.
const (
	ParamTypeSpaceID = "space_id"
	ParamTypeItemRef = "item_ref"
	ParamTypeString  = "string"
)

// SupportedParamTypes is the closed set of parameter types the validator
// understands. Anything else is a content error, not a silent pass.
var SupportedParamTypes = map[string]bool{
	ParamTypeSpaceID: true,
	ParamTypeItemRef: true,
	ParamTypeString:  true,
}

// ParamConstraint narrows which item instances satisfy an item_ref.
type ParamConstraint struct {
	Reachable   bool `yaml:"reachable"`
	InInventory bool `yaml:"in_inventory"`
}

// ItemMeta describes an item type's capabilities. Concrete instances in the
// world reference this by item id.
type ItemMeta struct {
	ID                string      `yaml:"id"`
	Name              string      `yaml:"name"`
	Tags              []string    `yaml:"tags"`
	Provides          []string    `yaml:"provides"`
	RequiresUtilities []string    `yaml:"requires_utilities"`
	Durability        *Durability `yaml:"durability"`
	Price             int         `yaml:"price"`
	Quality           float64     `yaml:"quality"`
	Bulk              int         `yaml:"bulk"`
}

// ProvidesCapability reports whether the item type supplies a capability.
func (m *ItemMeta) ProvidesCapability(capability string) bool {
	for _, p := range m.Provides {
		if p == capability {
			return true
		}
	}
	return false
}

// Durability bounds an item type's wear.
type Durability struct {
	Max                  int `yaml:"max"`
	DegradePerUseDefault int `yaml:"degrade_per_use_default"`
}

// SpaceSpec is an authored location definition.
type SpaceSpec struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Kind               string   `yaml:"kind"`
	BaseTemperatureC   int      `yaml:"base_temperature_c"`
	HasWindow          bool     `yaml:"has_window"`
	Connections        []string `yaml:"connections"`
	Tags               []string `yaml:"tags"`
	Fixtures           []string `yaml:"fixtures"`
	UtilitiesAvailable []string `yaml:"utilities_available"`
}
