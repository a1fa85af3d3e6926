package main

import (
	"reflect"
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

func TestProfilesRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	in := ProfilesConfig{
		Active: "prod",
		Profiles: map[string]Profile{
			"prod":  {Backend: "database", DatabaseURL: "postgres://confdb@db/confdb"},
			"local": {Backend: "file", ConfigFile: "/tmp/config.json"},
		},
	}
	if err := saveProfiles(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := loadProfiles()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestLoadProfilesMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadProfiles()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Active != "" || len(cfg.Profiles) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	if err := saveProfiles(ProfilesConfig{
		Active: "prod",
		Profiles: map[string]Profile{
			"prod": {Backend: "database", DatabaseURL: "postgres://profile@db/confdb"},
		},
	}); err != nil {
		t.Fatalf("save profiles: %v", err)
	}

	// Profile applies when env and flags are silent.
	cfg, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Backend != "database" || cfg.DatabaseURL != "postgres://profile@db/confdb" {
		t.Errorf("profile not applied: %+v", cfg)
	}

	// Environment beats the profile.
	t.Setenv("CONFDB_DATABASE_URL", "postgres://env@db/confdb")
	cfg, err = resolveConfig()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.DatabaseURL != "postgres://env@db/confdb" {
		t.Errorf("env did not win over profile: %+v", cfg)
	}

	// Flags beat everything.
	flagDatabaseURL = "postgres://flag@db/confdb"
	defer func() { flagDatabaseURL = "" }()
	cfg, err = resolveConfig()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.DatabaseURL != "postgres://flag@db/confdb" {
		t.Errorf("flag did not win: %+v", cfg)
	}
}

func TestResolveConfigValidates(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	flagBackend = "database"
	defer func() { flagBackend = "" }()

	if _, err := resolveConfig(); err == nil {
		t.Error("expected validation error: database mode without a URL")
	}
}
