package state

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// TimeSlices lists the slices of a day in order.
var TimeSlices = []string{"morning", "afternoon", "evening", "night"}

// SchemaVersion is bumped when the saved state shape changes.
const SchemaVersion = 1

// MaxEventLog bounds the event log so it cannot grow without limit.
const MaxEventLog = 100

// Event is a single entry in the state's event log.
type Event struct {
	EventID string         `json:"event_id"`
	Params  map[string]any `json:"params,omitempty"`
}

// World tracks the passage of time and the player's location.
type World struct {
	Day      int    `json:"day"`
	Slice    string `json:"slice"`
	Location string `json:"location"`
	Seed     int64  `json:"seed"`
}

// Utilities tracks which building utilities are currently on.
type Utilities struct {
	Power bool `json:"power"`
	Heat  bool `json:"heat"`
	Water bool `json:"water"`
}

// Space is a location in the world.
type Space struct {
	SpaceID            string   `json:"space_id"`
	Name               string   `json:"name"`
	Kind               string   `json:"kind"`
	BaseTemperatureC   int      `json:"base_temperature_c"`
	HasWindow          bool     `json:"has_window"`
	Connections        []string `json:"connections"`
	Tags               []string `json:"tags"`
	Fixtures           []string `json:"fixtures"`
	UtilitiesAvailable []string `json:"utilities_available"`
}

// HasTag reports whether the space carries the given semantic tag.
func (s *Space) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasFixture reports whether the space has the given fixed feature.
func (s *Space) HasFixture(fixture string) bool {
	for _, f := range s.Fixtures {
		if f == fixture {
			return true
		}
	}
	return false
}

// State is the complete mutable simulation state. It is owned by a single
// synchronous caller; nothing in this package locks.
type State struct {
	SchemaVersion int               `json:"schema_version"`
	World         World             `json:"world"`
	Player        *Player           `json:"player"`
	Utilities     Utilities         `json:"utilities"`
	Spaces        map[string]*Space `json:"spaces"`
	Items         []*Item           `json:"items"`
	NPCs          map[string]*NPC   `json:"npcs"`
	EventLog      []Event           `json:"event_log"`
}

// New returns an empty state with initialized containers.
func New() *State {
	return &State{
		SchemaVersion: SchemaVersion,
		World:         World{Day: 1, Slice: TimeSlices[0], Location: "room_001"},
		Player:        NewPlayer(),
		Utilities:     Utilities{Power: true, Heat: true, Water: true},
		Spaces:        make(map[string]*Space),
		Items:         make([]*Item, 0),
		NPCs:          make(map[string]*NPC),
		EventLog:      make([]Event, 0),
	}
}

// Log appends an event, trimming the log to MaxEventLog entries.
func (st *State) Log(eventID string, params map[string]any) {
	st.EventLog = append(st.EventLog, Event{EventID: eventID, Params: params})
	if len(st.EventLog) > MaxEventLog {
		st.EventLog = st.EventLog[len(st.EventLog)-MaxEventLog:]
	}
}

// ItemsAt returns the items placed in the given location. The special
// location "inventory" returns the player's carried items.
func (st *State) ItemsAt(location string) []*Item {
	out := make([]*Item, 0)
	for _, it := range st.Items {
		if it.PlacedIn == location {
			out = append(out, it)
		}
	}
	return out
}

// ItemByInstance finds an item by instance id, or nil.
func (st *State) ItemByInstance(instanceID string) *Item {
	for _, it := range st.Items {
		if it.InstanceID == instanceID {
			return it
		}
	}
	return nil
}

// RemoveItem deletes an item instance from the world. It returns false if
// the instance is not present.
func (st *State) RemoveItem(instanceID string) bool {
	for i, it := range st.Items {
		if it.InstanceID == instanceID {
			st.Items = append(st.Items[:i], st.Items[i+1:]...)
			return true
		}
	}
	return false
}

// IsReachable reports whether an item can be used by the player right now:
// either carried, or placed at the current location.
func (st *State) IsReachable(it *Item) bool {
	return it.PlacedIn == PlacedInInventory || it.PlacedIn == st.World.Location
}

// InventoryBulk sums the bulk of all carried items.
func (st *State) InventoryBulk() int {
	total := 0
	for _, it := range st.Items {
		if it.PlacedIn == PlacedInInventory {
			total += it.Bulk
		}
	}
	return total
}

// CanCarry reports whether the player can pick up an item of the given bulk.
func (st *State) CanCarry(bulk int) bool {
	return st.InventoryBulk()+bulk <= st.Player.CarryCapacity
}

// Pickup moves an item from the current location into the inventory.
func (st *State) Pickup(it *Item) error {
	if it.PlacedIn != st.World.Location {
		return fmt.Errorf("item not at current location")
	}
	if !st.CanCarry(it.Bulk) {
		return fmt.Errorf("inventory full (%d/%d)", st.InventoryBulk(), st.Player.CarryCapacity)
	}
	it.PlacedIn = PlacedInInventory
	it.Slot = "inventory"
	return nil
}

// Drop moves an item from the inventory to the current location.
func (st *State) Drop(it *Item) error {
	if it.PlacedIn != PlacedInInventory {
		return fmt.Errorf("item not in inventory")
	}
	it.PlacedIn = st.World.Location
	it.Slot = "floor"
	return nil
}

// SliceIndex returns the index of the current time slice, defaulting to 0
// when the stored slice is unrecognized.
func (st *State) SliceIndex() int {
	for i, s := range TimeSlices {
		if s == st.World.Slice {
			return i
		}
	}
	return 0
}

// CurrentTick converts day and slice into a monotonic tick counter.
func (st *State) CurrentTick() int {
	return st.World.Day*len(TimeSlices) + st.SliceIndex()
}

// NewInstanceID generates an item instance id. With a non-nil rng the id is
// deterministic for a given seed, which keeps replays reproducible.
func NewInstanceID(rng *rand.Rand) string {
	if rng == nil {
		return uuid.New().String()
	}
	var b [16]byte
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Clamp100 clamps a value to the 0-100 range used by needs, skills and traits.
func Clamp100(x int) int {
	if x < 0 {
		return 0
	}
	if x > 100 {
		return 100
	}
	return x
}
