// Package config loads arsenal configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Vaults   VaultsConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// VaultsConfig holds cheat source locations.
type VaultsConfig struct {
	DefaultPaths  []string `mapstructure:"default_paths"`
	PlaybookRoots []string `mapstructure:"playbook_roots"`
	CustomFile    string   `mapstructure:"custom_file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	StartVault string `mapstructure:"start_vault"`
	TreeView   bool   `mapstructure:"tree_view"`
}

// Load reads configuration from file and env. Env var overrides use prefix ARSENAL_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "arsenal", "arsenal.db"))
	v.SetDefault("vaults.default_paths", []string{filepath.Join(home, ".cheats")})
	v.SetDefault("vaults.playbook_roots", []string{
		filepath.Join(home, ".arsenal-playbooks"),
		"/opt/playbooks",
	})
	v.SetDefault("vaults.custom_file", filepath.Join(home, ".cheats", "custom.md"))
	// empty start_vault means "resume where the last session left off"
	v.SetDefault("ui.start_vault", "")
	v.SetDefault("ui.tree_view", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ARSENAL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "arsenal"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ARSENAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI for non-sensitive preferences like the tree toggle.
func Save(cfg Config) error {
	path := os.Getenv("ARSENAL_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "arsenal", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("vaults.default_paths", cfg.Vaults.DefaultPaths)
	v.Set("vaults.playbook_roots", cfg.Vaults.PlaybookRoots)
	v.Set("vaults.custom_file", cfg.Vaults.CustomFile)
	v.Set("ui.start_vault", cfg.UI.StartVault)
	v.Set("ui.tree_view", cfg.UI.TreeView)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
