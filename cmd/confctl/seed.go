package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/confdb/internal/model"
	"github.com/groblegark/confdb/internal/store/postgres"
)

var seedFrom string

// seedCmd creates the singleton configuration row from a default document.
// Safe to run when joining an existing cluster: if the row already exists
// the stored content and version are left untouched.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the shared configuration from a default document (no-op if present)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("seed requires a database URL (--database-url or CONFDB_DATABASE_URL)")
		}

		data, err := os.ReadFile(seedFrom)
		if err != nil {
			return fmt.Errorf("read default document: %w", err)
		}
		doc, err := model.DecodeDocument(data)
		if err != nil {
			return err
		}

		pg, err := postgres.New(cfg.DatabaseURL, nil)
		if err != nil {
			return err
		}
		defer pg.Close()

		created, err := pg.Seed(context.Background(), doc, "confctl seed")
		if err != nil {
			return err
		}

		if created {
			fmt.Println("Seeded default configuration.")
		} else {
			fmt.Println("Joining existing shared configuration (row already present).")
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFrom, "from", "", "path to the default configuration document (required)")
	seedCmd.MarkFlagRequired("from")
}
