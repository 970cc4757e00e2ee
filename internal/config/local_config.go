package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfig is the subset of config.yaml read directly from the file rather
// than through the viper singleton. Needed when the working directory has
// changed since initialization, or when checking config before viper is
// initialized.
type LocalConfig struct {
	Author      string `yaml:"author"`
	ArchiveDays int    `yaml:"archive-days"`
}

// LoadLocalConfig reads and parses config.yaml from the given .docket
// directory. Returns an empty LocalConfig (not nil) if the file doesn't exist
// or can't be parsed.
func LoadLocalConfig(docketDir string) *LocalConfig {
	configPath := filepath.Join(docketDir, "config.yaml")
	data, err := os.ReadFile(configPath) // #nosec G304 - config file path from docketDir
	if err != nil {
		return &LocalConfig{}
	}

	var cfg LocalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &LocalConfig{}
	}

	return &cfg
}

// LoadLocalConfigWithEnv reads config.yaml and applies environment variable
// overrides. Environment variables take precedence over file values.
func LoadLocalConfigWithEnv(docketDir string) *LocalConfig {
	cfg := LoadLocalConfig(docketDir)

	if envAuthor := os.Getenv("DOCKET_AUTHOR"); envAuthor != "" {
		cfg.Author = envAuthor
	}

	return cfg
}
