// Package config loads process settings from the environment. These are
// the knobs that select and locate the configuration backend, not the
// shared configuration document itself.
package config

import (
	"fmt"
	"os"
)

// Backend mode values for CONFDB_BACKEND.
const (
	BackendFile     = "file"
	BackendDatabase = "database"
)

type Config struct {
	Backend     string // CONFDB_BACKEND: "file" (default) or "database"
	DatabaseURL string // CONFDB_DATABASE_URL (required in database mode)
	ConfigDir   string // CONFDB_CONFIG_DIR (default "/etc/confdb")
	ConfigFile  string // CONFDB_CONFIG_FILE (default "<dir>/config.json")
	CacheFile   string // CONFDB_CACHE_FILE (default "<dir>/config.json.cache")
}

// Load reads the environment once and validates the result. Call it at
// process start and pass the result down; components never re-read
// environment switches per call.
func Load() (*Config, error) {
	c := FromEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromEnv reads the environment and applies defaults without validating.
// confctl layers profile and flag overrides on top before validating.
func FromEnv() *Config {
	dir := envOrDefault("CONFDB_CONFIG_DIR", "/etc/confdb")

	return &Config{
		Backend:     envOrDefault("CONFDB_BACKEND", BackendFile),
		DatabaseURL: os.Getenv("CONFDB_DATABASE_URL"),
		ConfigDir:   dir,
		ConfigFile:  envOrDefault("CONFDB_CONFIG_FILE", dir+"/config.json"),
		CacheFile:   envOrDefault("CONFDB_CACHE_FILE", dir+"/config.json.cache"),
	}
}

// Validate checks mode-dependent requirements.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
	case BackendDatabase:
		if c.DatabaseURL == "" {
			return fmt.Errorf("CONFDB_BACKEND=database requires CONFDB_DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown CONFDB_BACKEND value: %q", c.Backend)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
