package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/confdb/internal/config"
	"github.com/groblegark/confdb/internal/settings"
)

// refreshCmd performs one read against the active backend. In database
// mode the read's side effect rewrites the local cache file, so file-only
// consumers (the receiver's startup hook) see the latest configuration.
// Exits non-zero if the read fails; a consumer must not start against a
// stale or missing cache.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Read the configuration once so the local cache file is up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}

		mgr, err := settings.New(cfg)
		if err != nil {
			return err
		}
		defer mgr.Close()

		ctx := context.Background()
		if _, err := mgr.Read(ctx); err != nil {
			return err
		}

		if mgr.Mode() == config.BackendDatabase {
			fmt.Printf("Refreshed cache file %s\n", cfg.CacheFile)
		} else {
			fmt.Printf("Configuration readable at %s\n", cfg.ConfigFile)
		}
		return nil
	},
}
