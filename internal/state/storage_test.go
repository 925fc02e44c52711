package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "game.json")
	storage := NewStorage(path)

	st := New()
	st.World.Day = 7
	st.World.Slice = "evening"
	st.Player.MoneyPence = 1234
	st.Player.Skills["cooking"].Value = 42.5
	st.Items = append(st.Items, &Item{InstanceID: "i1", ItemID: "kettle", PlacedIn: "kitchen_001", ConditionValue: 60})

	require.NoError(t, storage.Save(st))
	require.True(t, storage.Exists())

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.World.Day)
	assert.Equal(t, "evening", loaded.World.Slice)
	assert.Equal(t, 1234, loaded.Player.MoneyPence)
	assert.InDelta(t, 42.5, loaded.Player.Skills["cooking"].Value, 1e-9)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "kettle", loaded.Items[0].ItemID)
}

func TestSaveReplacesExistingFileAndLeavesNoTemp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	storage := NewStorage(path)

	st := New()
	st.World.Day = 1
	require.NoError(t, storage.Save(st))

	st.World.Day = 2
	require.NoError(t, storage.Save(st))

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.World.Day)

	// The rename consumed the intermediate file.
	_, statErr := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadRejectsWrongSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema_version": 999}`), 0644))

	_, err := NewStorage(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version")
}

func TestLoadRepairsMissingContainers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema_version": 1}`), 0644))

	st, err := NewStorage(path).Load()
	require.NoError(t, err)
	assert.NotNil(t, st.Player)
	assert.NotNil(t, st.Player.Flags)
	assert.NotNil(t, st.Spaces)
	assert.Contains(t, st.Player.Skills, "cooking")
}

func TestLoadMissingFile(t *testing.T) {
	storage := NewStorage(filepath.Join(t.TempDir(), "nope.json"))
	assert.False(t, storage.Exists())
	_, err := storage.Load()
	require.Error(t, err)
}
