package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.DeltaTime <= 0 {
		return fmt.Errorf("simulation.delta_time must be positive, got %v", c.Simulation.DeltaTime)
	}
	if c.Arena.Left >= c.Arena.Right || c.Arena.Back >= c.Arena.Forward {
		return fmt.Errorf("arena rectangle is empty: %+v", c.Arena)
	}
	if c.AI.MaxIterations <= 0 {
		return fmt.Errorf("ai.max_iterations must be positive, got %d", c.AI.MaxIterations)
	}
	if c.AI.AttackWindowStart >= c.AI.AttackWindowEnd {
		return fmt.Errorf("ai attack window is empty: %v..%v", c.AI.AttackWindowStart, c.AI.AttackWindowEnd)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./onisim.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "OniPatrol")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "OniPatrol")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "oni-patrol")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "oni-patrol")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
