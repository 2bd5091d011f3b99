// Package config holds the go-tally configuration and loads it from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file over the defaults, expanding environment variables, then validates.
func Load(filename string) (*Config, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns validated defaults when filename does not exist.
func LoadOptional(filename string) (*Config, error) {
	if filename == "" {
		return NewDefaultConfig(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	return Load(filename)
}
