package level

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseTOML decodes an authored level file and validates it.
func ParseTOML(data string) (*Level, error) {
	var l Level
	md, err := toml.Decode(data, &l)
	if err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Printf("[LEVEL] %q: ignoring unknown keys %v", l.ID, undecoded)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadFile reads a single .toml or .json level.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	l, err := ParseTOML(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return l, nil
}

// LoadDir reads every level file in dir, ordered by sort_order then id.
func LoadDir(dir string) ([]*Level, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var levels []*Level
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".toml" && ext != ".json" {
			continue
		}
		l, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("level %q defined in both %s and %s: %w", l.ID, prev, e.Name(), ErrInvalidLevel)
		}
		seen[l.ID] = e.Name()
		levels = append(levels, l)
	}

	sort.Slice(levels, func(i, j int) bool {
		if levels[i].SortOrder != levels[j].SortOrder {
			return levels[i].SortOrder < levels[j].SortOrder
		}
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// ParseJSON decodes the stored form of a level and validates it.
func ParseJSON(data []byte) (*Level, error) {
	var l Level
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// EncodeTOML writes the level in its authoring format.
func EncodeTOML(l *Level) (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(l); err != nil {
		return "", err
	}
	return b.String(), nil
}
