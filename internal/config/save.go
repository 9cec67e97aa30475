package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveDefault writes the config to the user's config directory, where Load
// looks for it.
func (c *Config) SaveDefault() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
