package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/confdb/internal/settings"
)

// showCmd prints the current document in its canonical form.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration document",
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

		raw, err := mgr.ReadRaw(context.Background())
		if err != nil {
			return err
		}
		fmt.Print(raw)
		return nil
	},
}
