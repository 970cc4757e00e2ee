// Package config wraps the viper singleton that merges config.yaml, DOCKET_*
// environment variables, and defaults.
//
// Priority: command-line flags (applied by the caller) > environment > config
// file > defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Initialize sets up viper to read .docket/config.yaml plus DOCKET_*
// environment variables. A missing config file is not an error; any other
// read failure is.
func Initialize() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".docket")

	viper.SetEnvPrefix("DOCKET")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("json", false)
	viper.SetDefault("format", "")
	viper.SetDefault("author", "")
	viper.SetDefault("dir", "")
	viper.SetDefault("archive-days", 30)
}

// GetString returns a string config value by key.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value by key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetInt returns an integer config value by key.
func GetInt(key string) int {
	return viper.GetInt(key)
}
