// Package config provides gantry configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	gantryerrors "github.com/rmalloy/gantry/internal/errors"
)

const (
	// GantryDir is the gantry data directory inside a project.
	GantryDir = ".gantry"
	// ConfigFileName is the config file inside GantryDir.
	ConfigFileName = "config.yaml"
)

// Storage backends.
const (
	BackendFiles  = "files"
	BackendSQLite = "sqlite"
)

// Coordination modes.
const (
	// ModeSolo skips collection locking (single-user checkout).
	ModeSolo = "solo"
	// ModeShared serializes mutations through a file lock.
	ModeShared = "shared"
)

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
}

// CoordinationConfig selects the mutation-locking mode.
type CoordinationConfig struct {
	Mode string `yaml:"mode"`
}

// GitConfig configures commit scanning.
type GitConfig struct {
	// ScanLimit caps how many commits 'gantry commits scan' reads.
	ScanLimit int `yaml:"scan_limit"`
}

// Config is the full gantry configuration.
type Config struct {
	Storage      StorageConfig      `yaml:"storage"`
	Coordination CoordinationConfig `yaml:"coordination"`
	Git          GitConfig          `yaml:"git"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage:      StorageConfig{Backend: BackendFiles},
		Coordination: CoordinationConfig{Mode: ModeSolo},
		Git:          GitConfig{ScanLimit: 200},
	}
}

// Load reads configuration for a project directory. Load order (later
// overrides earlier): built-in defaults, .gantry/config.yaml if present,
// GANTRY_* environment variables.
func Load(projectDir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(projectDir, GantryDir, ConfigFileName)
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays GANTRY_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GANTRY_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("GANTRY_COORDINATION_MODE"); v != "" {
		cfg.Coordination.Mode = v
	}
	if v := os.Getenv("GANTRY_GIT_SCAN_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Git.ScanLimit = n
		}
	}
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFiles, BackendSQLite:
	default:
		return gantryerrors.ErrConfigInvalid("storage.backend",
			fmt.Sprintf("must be %q or %q, got %q", BackendFiles, BackendSQLite, c.Storage.Backend))
	}
	switch c.Coordination.Mode {
	case ModeSolo, ModeShared:
	default:
		return gantryerrors.ErrConfigInvalid("coordination.mode",
			fmt.Sprintf("must be %q or %q, got %q", ModeSolo, ModeShared, c.Coordination.Mode))
	}
	if c.Git.ScanLimit < 1 {
		return gantryerrors.ErrConfigInvalid("git.scan_limit", "must be at least 1")
	}
	return nil
}

// Save writes the configuration to .gantry/config.yaml in projectDir.
func (c *Config) Save(projectDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	dir := filepath.Join(projectDir, GantryDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644)
}

// IsInitialized reports whether projectDir contains a gantry directory.
func IsInitialized(projectDir string) bool {
	info, err := os.Stat(filepath.Join(projectDir, GantryDir))
	return err == nil && info.IsDir()
}

// RequireInit returns a not-initialized error when projectDir has no
// gantry directory.
func RequireInit(projectDir string) error {
	if !IsInitialized(projectDir) {
		return gantryerrors.ErrNotInitialized()
	}
	return nil
}
