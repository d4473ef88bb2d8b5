// Package config handles reading and writing the shopfloor config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version   int             `yaml:"version"`
	API       APIConfig       `yaml:"api"`
	Poll      PollConfig      `yaml:"poll"`
	Location  LocationConfig  `yaml:"location"`
	Processes []ProcessConfig `yaml:"processes,omitempty"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Tenant  string `yaml:"tenant,omitempty"`
}

// PollConfig controls the background refresh of the active session.
type PollConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// LocationConfig controls best-effort geolocation capture on timer start.
type LocationConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command,omitempty"` // helper printing a JSON fix on stdout
}

// ProcessConfig is one cached process-catalog entry, refreshed via
// `shopfloor processes --refresh` and used when the backend is unreachable.
type ProcessConfig struct {
	Code                string `yaml:"code"`
	Name                string `yaml:"name"`
	IsGeneric           bool   `yaml:"is_generic"`
	IsLastManufacturing bool   `yaml:"is_last_manufacturing,omitempty"`
	IsLastInstallation  bool   `yaml:"is_last_installation,omitempty"`
}

const configDirName = ".shopfloor"
const configFile = "config.yaml"

// Dir returns the shopfloor config directory: $SHOPFLOOR_CONFIG_DIR when
// set, otherwise ~/.shopfloor.
func Dir() (string, error) {
	if dir := os.Getenv("SHOPFLOOR_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ReadConfig reads config.yaml from the given config directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to config.yaml in the given config directory.
// Creates the directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	// The API token lives in here.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Poll: PollConfig{
			IntervalSeconds: 5,
		},
		Location: LocationConfig{
			Enabled: false,
		},
	}
}

// PollInterval returns the configured poll interval with a sane floor.
func (c *Config) PollInterval() int {
	if c.Poll.IntervalSeconds < 1 {
		return 5
	}
	return c.Poll.IntervalSeconds
}
