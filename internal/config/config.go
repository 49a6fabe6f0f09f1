// Package config loads server configuration from config/server.yaml with
// environment overrides applied by the entry point.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings.
type Config struct {
	Addr        string `yaml:"addr"`
	DatabaseURL string `yaml:"database_url"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present. An empty
// DatabaseURL selects the in-memory store.
func Default() *Config {
	return &Config{
		Addr:     ":8080",
		LogLevel: "info",
	}
}

// Load reads configuration from config/server.yaml.
func Load() (*Config, error) {
	return LoadFromPath(filepath.Join("config", "server.yaml"))
}

// LoadFromPath reads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("addr is required")
	}
	return cfg, nil
}

// LoadOrDefault loads the default config file or returns defaults if it does
// not exist.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}
