package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage persists simulation state as a JSON snapshot on disk. The core
// never calls this itself; the CLI and server own when to save and load.
type Storage struct {
	savePath string
}

// NewStorage creates a storage rooted at the given file path.
func NewStorage(savePath string) *Storage {
	return &Storage{savePath: savePath}
}

// Save writes the state snapshot to disk. The snapshot goes to a temp file
// first and is renamed into place, so a crash mid-write cannot leave a
// truncated save behind.
func (s *Storage) Save(st *State) error {
	dir := filepath.Dir(s.savePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := s.savePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp, s.savePath); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

// Load reads a state snapshot from disk. A missing file is an error; callers
// decide whether to start a new game instead.
func (s *Storage) Load() (*State, error) {
	data, err := os.ReadFile(s.savePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	if st.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported state schema version %d (want %d)", st.SchemaVersion, SchemaVersion)
	}

	// Defend against hand-edited saves with missing containers.
	if st.Player == nil {
		st.Player = NewPlayer()
	}
	if st.Player.Skills == nil {
		st.Player.Skills = make(map[string]*Skill)
	}
	for _, name := range SkillNames {
		if _, ok := st.Player.Skills[name]; !ok {
			st.Player.Skills[name] = &Skill{Value: 0, RustRate: 0.02}
		}
	}
	if st.Player.Flags == nil {
		st.Player.Flags = make(map[string]int)
	}
	if st.Player.HabitTracker == nil {
		st.Player.HabitTracker = make(map[string]int)
	}
	if st.Player.Relationships == nil {
		st.Player.Relationships = make(map[string]int)
	}
	if st.Spaces == nil {
		st.Spaces = make(map[string]*Space)
	}
	if st.NPCs == nil {
		st.NPCs = make(map[string]*NPC)
	}
	if st.Items == nil {
		st.Items = make([]*Item, 0)
	}
	if st.EventLog == nil {
		st.EventLog = make([]Event, 0)
	}

	return &st, nil
}

// Exists reports whether a save file is present.
func (s *Storage) Exists() bool {
	_, err := os.Stat(s.savePath)
	return err == nil
}
