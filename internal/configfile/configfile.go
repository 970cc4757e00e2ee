// Package configfile reads and writes the workspace metadata file stored
// inside the .docket directory.
package configfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const ConfigFileName = "metadata.json"

// Config holds the workspace-level settings persisted in metadata.json.
// Paths are relative to the workspace root.
type Config struct {
	TasksDir        string `json:"tasks_dir"`
	RequirementsDir string `json:"requirements_dir"`
	Author          string `json:"author,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		TasksDir:        "tasks",
		RequirementsDir: "requirements",
	}
}

func ConfigPath(docketDir string) string {
	return filepath.Join(docketDir, ConfigFileName)
}

// Load reads the metadata file from a .docket directory. A missing file
// returns (nil, nil) so callers can fall back to defaults; a legacy
// config.json is migrated to metadata.json on first read.
func Load(docketDir string) (*Config, error) {
	configPath := ConfigPath(docketDir)

	data, err := os.ReadFile(configPath) // #nosec G304 - controlled path from config
	if os.IsNotExist(err) {
		legacyPath := filepath.Join(docketDir, "config.json")
		data, err = os.ReadFile(legacyPath) // #nosec G304 - controlled path from config
		if os.IsNotExist(err) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading legacy config: %w", err)
		}

		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing legacy config: %w", err)
		}

		if err := cfg.Save(docketDir); err != nil {
			return nil, fmt.Errorf("migrating config to metadata.json: %w", err)
		}

		// Remove legacy file (best effort)
		_ = os.Remove(legacyPath)

		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Save(docketDir string) error {
	configPath := ConfigPath(docketDir)

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// TasksPath resolves the tasks tree relative to the workspace root.
func (c *Config) TasksPath(root string) string {
	if c.TasksDir == "" {
		return filepath.Join(root, "tasks")
	}
	return filepath.Join(root, c.TasksDir)
}

// RequirementsPath resolves the requirements tree relative to the workspace
// root.
func (c *Config) RequirementsPath(root string) string {
	if c.RequirementsDir == "" {
		return filepath.Join(root, "requirements")
	}
	return filepath.Join(root, c.RequirementsDir)
}
