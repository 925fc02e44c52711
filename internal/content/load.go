package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads actions, item metadata, and spaces from a content directory
// and runs the integrity pass over the result. Any integrity error blocks
// the load: broken content must never reach runtime.
func Load(dir string) (map[string]*ActionSpec, map[string]*ItemMeta, map[string]*SpaceSpec, error) {
	actions, err := LoadActions(dir + "/actions.yaml")
	if err != nil {
		return nil, nil, nil, err
	}
	items, err := LoadItemMeta(dir + "/items_meta.yaml")
	if err != nil {
		return nil, nil, nil, err
	}
	spaces, err := LoadSpaces(dir + "/spaces.yaml")
	if err != nil {
		return nil, nil, nil, err
	}
	if err := CheckIntegrity(actions, items).Err(); err != nil {
		return nil, nil, nil, err
	}
	return actions, items, spaces, nil
}

type actionsFile struct {
	Actions yaml.Node `yaml:"actions"`
}

// LoadActions loads action specifications from a YAML file. Duplicate
// action ids fail the load with the file and line of both definitions;
// later entries never silently replace earlier ones.
func LoadActions(path string) (map[string]*ActionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read actions file: %w", err)
	}

	var file actionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make(map[string]*ActionSpec)
	if file.Actions.Kind == 0 {
		return out, nil
	}
	if file.Actions.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: actions must be a list", path)
	}

	firstLine := make(map[string]int)
	for i, node := range file.Actions.Content {
		var spec ActionSpec
		if err := node.Decode(&spec); err != nil {
			return nil, fmt.Errorf("%s:%d: action %d: %w", path, node.Line, i, err)
		}
		if spec.ID == "" {
			return nil, fmt.Errorf("%s:%d: action %d missing id", path, node.Line, i)
		}
		if line, dup := firstLine[spec.ID]; dup {
			return nil, fmt.Errorf("%s:%d: duplicate action id %q (first defined at line %d)", path, node.Line, spec.ID, line)
		}
		firstLine[spec.ID] = node.Line
		if spec.DisplayName == "" {
			spec.DisplayName = spec.ID
		}
		if spec.Category == "" {
			spec.Category = "other"
		}
		out[spec.ID] = &spec
	}

	return out, nil
}

type itemsFile struct {
	Items yaml.Node `yaml:"items"`
}

// LoadItemMeta loads item capability metadata from a YAML file.
func LoadItemMeta(path string) (map[string]*ItemMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item metadata file: %w", err)
	}

	var file itemsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make(map[string]*ItemMeta)
	if file.Items.Kind == 0 {
		return out, nil
	}
	if file.Items.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: items must be a list", path)
	}

	firstLine := make(map[string]int)
	for i, node := range file.Items.Content {
		var meta ItemMeta
		if err := node.Decode(&meta); err != nil {
			return nil, fmt.Errorf("%s:%d: item %d: %w", path, node.Line, i, err)
		}
		if meta.ID == "" {
			return nil, fmt.Errorf("%s:%d: item %d missing id", path, node.Line, i)
		}
		if line, dup := firstLine[meta.ID]; dup {
			return nil, fmt.Errorf("%s:%d: duplicate item id %q (first defined at line %d)", path, node.Line, meta.ID, line)
		}
		firstLine[meta.ID] = node.Line
		if meta.Name == "" {
			meta.Name = meta.ID
		}
		if meta.Quality == 0 {
			meta.Quality = 1.0
		}
		if meta.Bulk == 0 {
			meta.Bulk = 1
		}
		out[meta.ID] = &meta
	}

	return out, nil
}

type spacesFile struct {
	Spaces yaml.Node `yaml:"spaces"`
}

// LoadSpaces loads space definitions from a YAML file.
func LoadSpaces(path string) (map[string]*SpaceSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spaces file: %w", err)
	}

	var file spacesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make(map[string]*SpaceSpec)
	if file.Spaces.Kind == 0 {
		return out, nil
	}
	if file.Spaces.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: spaces must be a list", path)
	}

	firstLine := make(map[string]int)
	for i, node := range file.Spaces.Content {
		var spec SpaceSpec
		if err := node.Decode(&spec); err != nil {
			return nil, fmt.Errorf("%s:%d: space %d: %w", path, node.Line, i, err)
		}
		if spec.ID == "" {
			return nil, fmt.Errorf("%s:%d: space %d missing id", path, node.Line, i)
		}
		if line, dup := firstLine[spec.ID]; dup {
			return nil, fmt.Errorf("%s:%d: duplicate space id %q (first defined at line %d)", path, node.Line, spec.ID, line)
		}
		firstLine[spec.ID] = node.Line
		out[spec.ID] = &spec
	}

	return out, nil
}
