package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/groblegark/confdb/internal/ui"
)

// ProfilesConfig holds all named store profiles and tracks which one is
// active. Stored as TOML under ~/.local/state/confctl.
type ProfilesConfig struct {
	Active   string             `toml:"active"`
	Profiles map[string]Profile `toml:"profiles"`
}

// Profile is a named set of backend settings, so operators working
// against several fleets don't retype connection strings.
type Profile struct {
	Backend     string `toml:"backend,omitempty"`
	DatabaseURL string `toml:"database_url,omitempty"`
	ConfigFile  string `toml:"config_file,omitempty"`
	CacheFile   string `toml:"cache_file,omitempty"`
}

func profilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "confctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.toml"), nil
}

func loadProfiles() (ProfilesConfig, error) {
	path, err := profilesPath()
	if err != nil {
		return ProfilesConfig{}, err
	}
	var cfg ProfilesConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return ProfilesConfig{Profiles: map[string]Profile{}}, nil
		}
		return ProfilesConfig{}, err
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return cfg, nil
}

func saveProfiles(cfg ProfilesConfig) error {
	path, err := profilesPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// activeProfile returns the active profile, if one is configured.
func activeProfile() (Profile, bool) {
	cfg, err := loadProfiles()
	if err != nil || cfg.Active == "" {
		return Profile{}, false
	}
	p, ok := cfg.Profiles[cfg.Active]
	return p, ok
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage named store profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProfiles()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(cfg.Profiles))
		for name := range cfg.Profiles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			marker := "  "
			if name == cfg.Active {
				marker = ui.Accent("* ")
			}
			p := cfg.Profiles[name]
			target := p.DatabaseURL
			if target == "" {
				target = p.ConfigFile
			}
			fmt.Printf("%s%s\t%s\n", marker, name, ui.Muted(target))
		}
		return nil
	},
}

var (
	profileAddBackend     string
	profileAddDatabaseURL string
	profileAddConfigFile  string
	profileAddCacheFile   string
)

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProfiles()
		if err != nil {
			return err
		}
		cfg.Profiles[args[0]] = Profile{
			Backend:     profileAddBackend,
			DatabaseURL: profileAddDatabaseURL,
			ConfigFile:  profileAddConfigFile,
			CacheFile:   profileAddCacheFile,
		}
		if cfg.Active == "" {
			cfg.Active = args[0]
		}
		return saveProfiles(cfg)
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProfiles()
		if err != nil {
			return err
		}
		if _, ok := cfg.Profiles[args[0]]; !ok {
			return fmt.Errorf("no such profile: %s", args[0])
		}
		cfg.Active = args[0]
		return saveProfiles(cfg)
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProfiles()
		if err != nil {
			return err
		}
		if _, ok := cfg.Profiles[args[0]]; !ok {
			return fmt.Errorf("no such profile: %s", args[0])
		}
		delete(cfg.Profiles, args[0])
		if cfg.Active == args[0] {
			cfg.Active = ""
		}
		return saveProfiles(cfg)
	},
}

func init() {
	profileAddCmd.Flags().StringVar(&profileAddBackend, "backend", "", "backend mode for this profile")
	profileAddCmd.Flags().StringVar(&profileAddDatabaseURL, "database-url", "", "PostgreSQL connection URL")
	profileAddCmd.Flags().StringVar(&profileAddConfigFile, "config-file", "", "configuration file path")
	profileAddCmd.Flags().StringVar(&profileAddCacheFile, "cache-file", "", "cache file path")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileRemoveCmd)
}
