// Package config provides configuration loading and structs for the
// vdcorput server and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Numerics  NumericsConfig  `yaml:"numerics"`
	Closure   ClosureConfig   `yaml:"closure"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the knowledge-base database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// KnowledgeConfig holds the knowledge-file directory and watch settings.
type KnowledgeConfig struct {
	Dir   string `yaml:"dir"`
	Watch *bool  `yaml:"watch"`
}

// WatchOrDefault returns whether to watch the knowledge directory for
// changes; defaults to true when a directory is configured.
func (k *KnowledgeConfig) WatchOrDefault() bool {
	if k.Watch != nil {
		return *k.Watch
	}
	return k.Dir != ""
}

// NumericsConfig holds the numeric-precision policy. PrecisionBits is
// fixed once at startup and threaded through as read-only configuration;
// changing it mid-process would make bound coefficients loaded at
// different times fix to different rationals.
type NumericsConfig struct {
	PrecisionBits uint `yaml:"precision_bits"`
}

// ClosureConfig holds the closure-engine settings used by proof search.
type ClosureConfig struct {
	SearchDepth int   `yaml:"search_depth"`
	Prune       *bool `yaml:"prune"`
}

// PruneOrDefault returns whether closure rounds prune to the convex hull;
// defaults to true when unset.
func (c *ClosureConfig) PruneOrDefault() bool {
	if c.Prune != nil {
		return *c.Prune
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and
// applies defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Knowledge.Dir != "" {
		cfg.Knowledge.Dir = expandPath(cfg.Knowledge.Dir, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
