package solver

import (
	"fmt"
	"os"
	"path/filepath"
)

// Data directory layout: preflop_<stack>bb.json per stack depth,
// postflop.json for the bucketed abstraction, river_overrides.json and
// multiway_overrides.json for the exact-key patches.
const (
	postflopFile = "postflop.json"
	riverFile    = "river_overrides.json"
	multiwayFile = "multiway_overrides.json"
)

// TableSet holds whatever strategy tables a data directory provides.
// Either table may be nil when its files are absent.
type TableSet struct {
	Preflop  *PreflopTable
	Postflop *PostflopTable
}

// LoadTableDir reads solver dumps from dir. A missing directory or
// missing files are not errors, the caller falls back to the built-in
// tables; a file that exists but will not decode is.
func LoadTableDir(dir string) (*TableSet, error) {
	set := &TableSet{}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return set, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "preflop_*bb.json"))
	if err != nil {
		return nil, err
	}
	datasets := make(map[int]*PreflopDataset, len(matches))
	for _, path := range matches {
		var stackBB int
		if _, err := fmt.Sscanf(filepath.Base(path), "preflop_%dbb.json", &stackBB); err != nil || stackBB <= 0 {
			continue
		}
		data, err := LoadPreflopDataset(path)
		if err != nil {
			return nil, err
		}
		datasets[stackBB] = data
	}
	if len(datasets) > 0 {
		table, err := NewPreflopTable(datasets)
		if err != nil {
			return nil, err
		}
		set.Preflop = table
	}

	if data, err := loadOptionalPostflop(filepath.Join(dir, postflopFile)); err != nil {
		return nil, err
	} else if data != nil {
		river, err := loadOptionalOverride(filepath.Join(dir, riverFile))
		if err != nil {
			return nil, err
		}
		multiway, err := loadOptionalOverride(filepath.Join(dir, multiwayFile))
		if err != nil {
			return nil, err
		}
		table, err := NewPostflopTable(data, river, multiway)
		if err != nil {
			return nil, err
		}
		set.Postflop = table
	}
	return set, nil
}

func loadOptionalPostflop(path string) (*PostflopDataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadPostflopDataset(path)
}

func loadOptionalOverride(path string) (*OverrideDataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadOverrideDataset(path)
}
