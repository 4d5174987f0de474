package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	dc "gppd-stats/domain/config"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "./config.yml"

// Path resolves the config file location from CONFIG_PATH.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load parses the YAML configuration file at path on top of the defaults.
func Load(path string) (*dc.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := dc.Default()
	// maps replace the defaults wholesale instead of merging key by key
	c.Pipeline.FuelCategories = nil
	c.Pipeline.FuelAliases = nil
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	def := dc.Default()
	if c.Pipeline.FuelCategories == nil {
		c.Pipeline.FuelCategories = def.Pipeline.FuelCategories
	}
	if c.Pipeline.FuelAliases == nil {
		c.Pipeline.FuelAliases = def.Pipeline.FuelAliases
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info(fmt.Sprintf("Loaded config: %s", path))
	return &c, nil
}

// LoadOrDefault behaves like Load but falls back to the defaults when the file does not exist.
func LoadOrDefault(path string) (*dc.Config, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("config.default", "path", path, "reason", "file not found")
		d := dc.Default()
		return &d, nil
	}
	return c, err
}
