package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/confdb/internal/config"
	"github.com/groblegark/confdb/internal/settings"
	"github.com/groblegark/confdb/internal/ui"
)

// statusCmd prints where configuration comes from and its last-write
// metadata: the version counter in database mode, the file mtime in file
// mode.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active backend and configuration version metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", ui.Muted("Backend:"), ui.Accent(cfg.Backend))

		if cfg.Backend == config.BackendFile {
			fmt.Printf("%s %s\n", ui.Muted("File:"), cfg.ConfigFile)
			st, err := os.Stat(cfg.ConfigFile)
			if err != nil {
				fmt.Printf("%s not found\n", ui.Muted("State:"))
				return nil
			}
			fmt.Printf("%s %s\n", ui.Muted("Modified:"), st.ModTime().Format(time.RFC3339))
			return nil
		}

		mgr, err := settings.New(cfg)
		if err != nil {
			return err
		}
		defer mgr.Close()

		info, err := mgr.VersionInfo(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", ui.Muted("Cache:"), cfg.CacheFile)
		fmt.Printf("%s %d\n", ui.Muted("Version:"), info.Version)
		fmt.Printf("%s %s\n", ui.Muted("Updated:"), info.UpdatedAt.Format(time.RFC3339))
		fmt.Printf("%s %s\n", ui.Muted("By:"), info.UpdatedBy)
		return nil
	},
}
