package state

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsClampToRange(t *testing.T) {
	p := NewPlayer()

	p.Needs.Apply("hunger", 500)
	hunger, ok := p.Needs.Get("hunger")
	require.True(t, ok)
	assert.Equal(t, 100, hunger)

	p.Needs.Apply("hunger", -500)
	hunger, _ = p.Needs.Get("hunger")
	assert.Equal(t, 0, hunger)

	assert.False(t, p.Needs.Apply("no_such_need", 1))
}

func TestTraitsClampToRange(t *testing.T) {
	p := NewPlayer()

	p.Traits.Set("discipline", 150)
	assert.Equal(t, 100, p.Traits.Get("discipline"))

	p.Traits.Set("discipline", -10)
	assert.Equal(t, 0, p.Traits.Get("discipline"))
}

func TestEventLogBounded(t *testing.T) {
	st := New()
	for i := 0; i < MaxEventLog*3; i++ {
		st.Log("test.event", map[string]any{"i": i})
	}
	assert.Len(t, st.EventLog, MaxEventLog)
	// Oldest entries were dropped, newest kept.
	last := st.EventLog[len(st.EventLog)-1]
	assert.Equal(t, MaxEventLog*3-1, last.Params["i"])
}

func TestPickupRespectsCarryCapacity(t *testing.T) {
	st := New()
	st.Spaces["room_001"] = &Space{SpaceID: "room_001"}
	st.Player.CarryCapacity = 3

	small := &Item{InstanceID: "a", ItemID: "soap_bar", PlacedIn: "room_001", Bulk: 1}
	big := &Item{InstanceID: "b", ItemID: "bed_basic", PlacedIn: "room_001", Bulk: 8}
	st.Items = append(st.Items, small, big)

	require.NoError(t, st.Pickup(small))
	assert.Equal(t, PlacedInInventory, small.PlacedIn)
	assert.Equal(t, 1, st.InventoryBulk())

	err := st.Pickup(big)
	require.Error(t, err)
	assert.Equal(t, "room_001", big.PlacedIn)
}

func TestDropPlacesAtCurrentLocation(t *testing.T) {
	st := New()
	st.World.Location = "kitchen_001"
	it := &Item{InstanceID: "a", ItemID: "kettle", PlacedIn: PlacedInInventory, Bulk: 2}
	st.Items = append(st.Items, it)

	require.NoError(t, st.Drop(it))
	assert.Equal(t, "kitchen_001", it.PlacedIn)
}

func TestDegradeAcceleratesBelowForty(t *testing.T) {
	healthy := &Item{ConditionValue: 80}
	healthy.Degrade(10)
	assert.Equal(t, 70, healthy.ConditionValue)
	assert.Equal(t, ConditionUsed, healthy.Condition)

	damaged := &Item{ConditionValue: 30}
	damaged.Degrade(10)
	// 1.5x wear once below 40.
	assert.Equal(t, 15, damaged.ConditionValue)
	assert.Equal(t, ConditionFilthy, damaged.Condition)
}

func TestDegradeFloorsAtZero(t *testing.T) {
	it := &Item{ConditionValue: 3}
	it.Degrade(10)
	assert.Equal(t, 0, it.ConditionValue)
	assert.Equal(t, ConditionFilthy, it.Condition)
}

func TestConditionBands(t *testing.T) {
	cases := []struct {
		value int
		want  string
	}{
		{100, ConditionPristine},
		{90, ConditionPristine},
		{89, ConditionUsed},
		{70, ConditionUsed},
		{69, ConditionWorn},
		{40, ConditionWorn},
		{39, ConditionBroken},
		{20, ConditionBroken},
		{19, ConditionFilthy},
		{0, ConditionFilthy},
	}
	for _, tc := range cases {
		it := &Item{ConditionValue: tc.value}
		it.UpdateCondition()
		assert.Equal(t, tc.want, it.Condition, "condition_value %d", tc.value)
	}
}

func TestInstanceIDsDeterministicWithSeed(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))

	for i := 0; i < 5; i++ {
		assert.Equal(t, NewInstanceID(a), NewInstanceID(b))
	}
}

func TestInstanceIDsDifferWithoutSeed(t *testing.T) {
	assert.NotEqual(t, NewInstanceID(nil), NewInstanceID(nil))
}

func TestIsReachable(t *testing.T) {
	st := New()
	st.World.Location = "room_001"

	here := &Item{InstanceID: "a", PlacedIn: "room_001"}
	carried := &Item{InstanceID: "b", PlacedIn: PlacedInInventory}
	elsewhere := &Item{InstanceID: "c", PlacedIn: "kitchen_001"}

	assert.True(t, st.IsReachable(here))
	assert.True(t, st.IsReachable(carried))
	assert.False(t, st.IsReachable(elsewhere))
}

func TestCurrentTick(t *testing.T) {
	st := New()
	st.World.Day = 3
	st.World.Slice = "evening"
	assert.Equal(t, 3*4+2, st.CurrentTick())
}

func TestAptitudeValueGoesThroughSkillMapping(t *testing.T) {
	p := NewPlayer()
	p.Aptitudes.Body = 1.5

	assert.InDelta(t, 1.5, p.AptitudeValue("cooking"), 1e-9)
	assert.InDelta(t, 1.0, p.AptitudeValue("unknown_skill"), 1e-9)
}
