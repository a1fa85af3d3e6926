package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFDB_BACKEND", "CONFDB_DATABASE_URL",
		"CONFDB_CONFIG_DIR", "CONFDB_CONFIG_FILE", "CONFDB_CACHE_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", c.Backend, BackendFile)
	}
	if c.ConfigFile != "/etc/confdb/config.json" {
		t.Errorf("ConfigFile = %q", c.ConfigFile)
	}
	if c.CacheFile != "/etc/confdb/config.json.cache" {
		t.Errorf("CacheFile = %q", c.CacheFile)
	}
}

func TestLoadConfigDirDerivesPaths(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFDB_CONFIG_DIR", "/srv/conf")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ConfigFile != "/srv/conf/config.json" {
		t.Errorf("ConfigFile = %q", c.ConfigFile)
	}
	if c.CacheFile != "/srv/conf/config.json.cache" {
		t.Errorf("CacheFile = %q", c.CacheFile)
	}
}

func TestLoadExplicitPathsWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFDB_CONFIG_DIR", "/srv/conf")
	t.Setenv("CONFDB_CONFIG_FILE", "/elsewhere/app.json")
	t.Setenv("CONFDB_CACHE_FILE", "/elsewhere/app.json.cache")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ConfigFile != "/elsewhere/app.json" || c.CacheFile != "/elsewhere/app.json.cache" {
		t.Errorf("explicit paths not honored: %+v", c)
	}
}

func TestLoadDatabaseModeRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFDB_BACKEND", "database")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without CONFDB_DATABASE_URL")
	}

	t.Setenv("CONFDB_DATABASE_URL", "postgres://confdb:secret@db/confdb")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Backend != BackendDatabase {
		t.Errorf("Backend = %q", c.Backend)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFDB_BACKEND", "etcd")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "etcd") {
		t.Errorf("want unknown-backend error naming the value, got %v", err)
	}
}
