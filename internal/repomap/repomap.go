// Package repomap persists the mapping from short repository names to local
// checkout paths, stored as .docket/repo-map.json.
package repomap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const FileName = "repo-map.json"

// Map associates repo names with absolute checkout paths.
type Map map[string]string

func Path(docketDir string) string {
	return filepath.Join(docketDir, FileName)
}

// Load reads the repo map from a .docket directory. A missing file yields an
// empty map.
func Load(docketDir string) (Map, error) {
	data, err := os.ReadFile(Path(docketDir)) // #nosec G304 - controlled path from config
	if os.IsNotExist(err) {
		return Map{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading repo map: %w", err)
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing repo map: %w", err)
	}
	if m == nil {
		m = Map{}
	}
	return m, nil
}

// Save writes the repo map back to the .docket directory.
func (m Map) Save(docketDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling repo map: %w", err)
	}
	if err := os.WriteFile(Path(docketDir), data, 0600); err != nil {
		return fmt.Errorf("writing repo map: %w", err)
	}
	return nil
}

// Names returns the mapped repo names in sorted order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
