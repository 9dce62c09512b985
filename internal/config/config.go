package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the questboard.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Logging Logging `toml:"logging"`
}

// Storage selects and configures the persistence backend.
type Storage struct {
	// Backend is either "sqlite" or "memory".
	Backend string `toml:"backend"`
	// Path is the SQLite database file. Ignored by the memory backend.
	Path string `toml:"path"`
}

// Logging configures service telemetry.
type Logging struct {
	// UseCases enables structured logging of service use-case events.
	UseCases bool `toml:"use-cases"`
}

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Storage: Storage{
			Backend: BackendSQLite,
			Path:    filepath.Join(home, ".questboard", "questboard.db"),
		},
	}
}

// Load reads the configuration file at path, falling back to defaults when
// the file does not exist. Environment variables QUESTBOARD_BACKEND and
// QUESTBOARD_DB override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if backend := os.Getenv("QUESTBOARD_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dbPath := os.Getenv("QUESTBOARD_DB"); dbPath != "" {
		cfg.Storage.Path = dbPath
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want %q or %q)",
			c.Storage.Backend, BackendSQLite, BackendMemory)
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.Path == "" {
		return fmt.Errorf("sqlite backend requires a database path")
	}
	return nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "questboard.toml"
	}
	return filepath.Join(home, ".questboard", "questboard.toml")
}
