package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the tool-level settings from ~/.subtrack/config.yaml.
type Config struct {
	// DBPath is the SQLite database file. Defaults next to the config.
	DBPath string `yaml:"db_path,omitempty"`

	// UnitPrice is the default price per rented month, used by the
	// revenue report when --price is not given.
	UnitPrice int64 `yaml:"unit_price,omitempty"`

	// Currency is the ISO code used to format report amounts.
	Currency string `yaml:"currency,omitempty"`
}

// DefaultUnitPrice is the fallback price per rented month, in VND.
const DefaultUnitPrice = 50000

// DefaultConfigDir returns ~/.subtrack, or "" when the home directory is
// unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subtrack")
}

// LoadConfig reads the config file, returning defaults when it does not
// exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	applyDefaults(&cfg, path)
	return &cfg, nil
}

func defaultConfig(path string) *Config {
	cfg := &Config{}
	applyDefaults(cfg, path)
	return cfg
}

func applyDefaults(cfg *Config, configPath string) {
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(configPath), "subtrack.db")
	}
	if cfg.UnitPrice <= 0 {
		cfg.UnitPrice = DefaultUnitPrice
	}
	if cfg.Currency == "" {
		cfg.Currency = "VND"
	}
}

// Save writes the config, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
