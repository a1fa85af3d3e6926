package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/confdb/internal/store/file"
	"github.com/groblegark/confdb/internal/store/postgres"
)

var migrateIfAbsent bool

// migrateCmd transplants an existing configuration file into the shared
// store with exactly one save. Run it on the standalone node before any
// node switches to database mode; the operator is responsible for
// sequencing.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy a local configuration file into the shared store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("migrate requires a database URL (--database-url or CONFDB_DATABASE_URL)")
		}

		ctx := context.Background()

		doc, err := file.New(cfg.ConfigFile).Load(ctx)
		if err != nil {
			return fmt.Errorf("read source file: %w", err)
		}

		pg, err := postgres.New(cfg.DatabaseURL, nil)
		if err != nil {
			return err
		}
		defer pg.Close()

		if migrateIfAbsent {
			created, err := pg.Seed(ctx, doc, "confctl migrate")
			if err != nil {
				return err
			}
			if !created {
				return fmt.Errorf("shared store already has a configuration; refusing to overwrite (drop --if-absent to replace)")
			}
			fmt.Printf("Migrated %s into the shared store.\n", cfg.ConfigFile)
			return nil
		}

		version, err := pg.Save(ctx, doc, "confctl migrate")
		if err != nil {
			return err
		}
		fmt.Printf("Migrated %s into the shared store (version %d).\n", cfg.ConfigFile, version)
		fmt.Println("Next: set CONFDB_BACKEND=database and CONFDB_DATABASE_URL on every node, then restart services.")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateIfAbsent, "if-absent", false, "fail instead of overwriting an existing shared configuration")
}
