// Package cliconfig holds ambient CLI preferences — defaults for flags the
// user didn't pass — loaded via viper from a YAML file. These are never
// part of a branching model (internal/model owns persistence/order/color);
// they only seed flag defaults.
package cliconfig

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the defaults the CLI flags fall back to when unset.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Pager    PagerConfig    `yaml:"pager"`
	Commit   CommitConfig   `yaml:"commit"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// RenderConfig holds the default terminal presentation.
type RenderConfig struct {
	Style   string `yaml:"style"`
	Color   string `yaml:"color"` // "auto", "always", "never"
	Wrap    string `yaml:"wrap"`
	MaxCols int    `yaml:"max_cols"`
}

// PagerConfig controls whether and how output is paged.
type PagerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"` // empty means consult $PAGER, then "less"
}

// CommitConfig holds the default commit-formatting preference.
type CommitConfig struct {
	Format string `yaml:"format"`
}

// DefaultsConfig holds miscellaneous pipeline defaults.
type DefaultsConfig struct {
	Model    string `yaml:"model"`
	MaxCount int    `yaml:"max_count"`
}

// Default returns the built-in configuration used when no user config file
// exists, matching the CLI's own documented flag defaults.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Style:   "normal",
			Color:   "auto",
			Wrap:    "auto",
			MaxCols: 0,
		},
		Pager: PagerConfig{
			Enabled: true,
			Command: "",
		},
		Commit: CommitConfig{
			Format: "oneline",
		},
		Defaults: DefaultsConfig{
			Model:    "git-flow",
			MaxCount: 0,
		},
	}
}

// Load reads ~/.config/ggraph/config.yaml over the defaults, returning the
// defaults unchanged when no file is present.
func Load() (*Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(filepath.Join(home, ".config", "ggraph"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, err
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
