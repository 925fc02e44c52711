package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadActionsParsesTypedSchema(t *testing.T) {
	path := writeFile(t, t.TempDir(), "actions.yaml", `
actions:
  - id: cook_basic_meal
    display_name: Cook a basic meal
    category: survival
    time_minutes: 45
    requires:
      location:
        any_space_tags: [kitchen]
        requires_fixture: stove_spot
      utilities:
        all_true: [power]
      items:
        all_provides: [cook_surface]
      money_pence: 50
      skills_min:
        cooking: 5
    modifiers:
      primary_skill: cooking
      secondary_skills:
        nutrition: 0.2
      tier_floor: 0
    consumes:
      money_pence: 50
      item_durability:
        - provides: cook_surface
          amount: 2
    outcomes:
      0:
        deltas:
          needs: { hunger: -10 }
      1:
        deltas:
          needs: { hunger: -35 }
          skills_xp: { cooking: 1.0 }
`)

	actions, err := LoadActions(path)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	spec := actions["cook_basic_meal"]
	require.NotNil(t, spec)
	assert.Equal(t, "survival", spec.Category)
	assert.Equal(t, []string{"kitchen"}, spec.Requires.Location.AnySpaceTags)
	assert.Equal(t, "stove_spot", spec.Requires.Location.RequiresFixture)
	require.NotNil(t, spec.Requires.MoneyPence)
	assert.Equal(t, 50, *spec.Requires.MoneyPence)
	assert.Equal(t, 5.0, spec.Requires.SkillsMin["cooking"])
	assert.Equal(t, 0, spec.TierFloor())
	assert.Equal(t, -35, spec.Outcomes[1].Deltas.Needs["hunger"])
	require.NotNil(t, spec.Consumes)
	assert.Equal(t, 50, spec.Consumes.MoneyPence)
	require.Len(t, spec.Consumes.ItemDurability, 1)
	assert.Equal(t, "cook_surface", spec.Consumes.ItemDurability[0].Provides)
}

func TestLoadActionsRejectsDuplicateIDs(t *testing.T) {
	path := writeFile(t, t.TempDir(), "actions.yaml", `
actions:
  - id: sleep
    outcomes:
      1:
        deltas: {}
  - id: sleep
    outcomes:
      1:
        deltas: {}
`)

	_, err := LoadActions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate action id "sleep"`)
	assert.Contains(t, err.Error(), "first defined at line")
}

func TestLoadActionsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "actions.yaml", `
actions:
  - id: idle
    outcomes:
      1:
        deltas: {}
`)

	actions, err := LoadActions(path)
	require.NoError(t, err)
	spec := actions["idle"]
	assert.Equal(t, "idle", spec.DisplayName)
	assert.Equal(t, "other", spec.Category)
	assert.Equal(t, 1, spec.TierFloor())
}

func TestLoadActionsRejectsMissingID(t *testing.T) {
	path := writeFile(t, t.TempDir(), "actions.yaml", `
actions:
  - display_name: Anonymous
`)
	_, err := LoadActions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestLoadItemMetaDefaultsAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "items.yaml", `
items:
  - id: kettle
    provides: [boil_water]
`)
	items, err := LoadItemMeta(path)
	require.NoError(t, err)
	meta := items["kettle"]
	require.NotNil(t, meta)
	assert.Equal(t, "kettle", meta.Name)
	assert.Equal(t, 1.0, meta.Quality)
	assert.Equal(t, 1, meta.Bulk)
	assert.True(t, meta.ProvidesCapability("boil_water"))
	assert.False(t, meta.ProvidesCapability("cook_surface"))

	dup := writeFile(t, dir, "dup.yaml", `
items:
  - id: kettle
  - id: kettle
`)
	_, err = LoadItemMeta(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate item id "kettle"`)
}

func TestLoadSpaces(t *testing.T) {
	path := writeFile(t, t.TempDir(), "spaces.yaml", `
spaces:
  - id: kitchen_001
    name: Shared kitchen
    kind: shared
    connections: [hall_001]
    tags: [kitchen]
    fixtures: [sink, stove_spot]
`)
	spaces, err := LoadSpaces(path)
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Equal(t, []string{"sink", "stove_spot"}, spaces["kitchen_001"].Fixtures)
}

func TestLoadBlocksOnIntegrityErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "actions.yaml", `
actions:
  - id: broken
    modifiers:
      tier_floor: 0
    outcomes:
      1:
        deltas: {}
`)
	writeFile(t, dir, "items_meta.yaml", "items: []\n")
	writeFile(t, dir, "spaces.yaml", "spaces: []\n")

	_, _, _, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tier 0 is reachable but has no outcome defined")
}

func TestLoadShippedContent(t *testing.T) {
	actions, items, spaces, err := Load("../../data")
	require.NoError(t, err)
	assert.NotEmpty(t, actions)
	assert.NotEmpty(t, items)
	assert.NotEmpty(t, spaces)
}
