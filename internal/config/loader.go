package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Relative locations searched for a configuration file.
const (
	xdgConfigFile   = "tui-2048/config.yaml"
	localConfigFile = "configs/two48.yaml"
)

// Load loads the 2048 configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/tui-2048/config.yaml ->
// ./configs/two48.yaml -> embedded default -> Default().
// Keys missing from a file keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return Config{}, err
		}
		return cfg, validate(cfg, customPath)
	}

	// Try user config directory
	if userCfgPath, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		if cfg, err := readFile(userCfgPath); err == nil {
			return cfg, validate(cfg, userCfgPath)
		}
	}

	// Try local configs directory
	if _, err := os.Stat(localConfigFile); err == nil {
		if cfg, err := readFile(localConfigFile); err == nil {
			return cfg, validate(cfg, localConfigFile)
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default().
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

func readFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
