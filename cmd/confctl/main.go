// Command confctl is the operator CLI for the shared runtime
// configuration store: bootstrap (seed, migrate), the consumer-contract
// refresh, and inspection (show, status).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/confdb/internal/config"
	"github.com/groblegark/confdb/internal/ui"
)

var (
	flagBackend     string
	flagDatabaseURL string
	flagConfigFile  string
	flagCacheFile   string
	flagNoColor     bool
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "confctl",
	Short: "Manage the shared runtime configuration store",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			ui.ForceNoColor()
		}
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

// resolveConfig builds the effective settings: environment, then the
// active profile for anything unset, then command-line flags on top.
func resolveConfig() (*config.Config, error) {
	cfg := config.FromEnv()

	if p, ok := activeProfile(); ok {
		if os.Getenv("CONFDB_BACKEND") == "" && p.Backend != "" {
			cfg.Backend = p.Backend
		}
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = p.DatabaseURL
		}
		if os.Getenv("CONFDB_CONFIG_FILE") == "" && p.ConfigFile != "" {
			cfg.ConfigFile = p.ConfigFile
		}
		if os.Getenv("CONFDB_CACHE_FILE") == "" && p.CacheFile != "" {
			cfg.CacheFile = p.CacheFile
		}
	}

	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagDatabaseURL != "" {
		cfg.DatabaseURL = flagDatabaseURL
	}
	if flagConfigFile != "" {
		cfg.ConfigFile = flagConfigFile
	}
	if flagCacheFile != "" {
		cfg.CacheFile = flagCacheFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "backend mode: file or database (default from CONFDB_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL connection URL (default from CONFDB_DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config-file", "", "configuration file path (default from CONFDB_CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagCacheFile, "cache-file", "", "cache file path (default from CONFDB_CACHE_FILE)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(profileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
