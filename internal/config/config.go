// Package config provides configuration types and defaults for lattice.
package config

import (
	"fmt"

	"github.com/zjrosen/lattice/internal/tracing"
)

// Config holds all configuration options for lattice.
type Config struct {
	// RegistryFile is the YAML document describing interfaces and
	// registrations. Default: .lattice/registry.yaml
	RegistryFile string `mapstructure:"registry_file"`

	// AutoReload rebuilds the registry when the document changes on disk.
	AutoReload bool `mapstructure:"auto_reload"`

	// AutoReloadDebounce is the debounce window for reloads, in milliseconds.
	AutoReloadDebounce int `mapstructure:"auto_reload_debounce"`

	// CacheTTL is the lookup cache time-to-live, in seconds. Zero disables
	// the cache.
	CacheTTL int `mapstructure:"cache_ttl"`

	UI      UIConfig       `mapstructure:"ui"`
	Theme   ThemeConfig    `mapstructure:"theme"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds explorer interface configuration options.
type UIConfig struct {
	ShowGeneration bool `mapstructure:"show_generation"`
	ShowStatusBar  bool `mapstructure:"show_status_bar"`
}

// ThemeConfig holds color customization options for explorer output.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"` // hex color e.g. "#7C3AED"
	Subtle    string `mapstructure:"subtle"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		RegistryFile:       ".lattice/registry.yaml",
		AutoReload:         true,
		AutoReloadDebounce: 500,
		CacheTTL:           60,
		UI: UIConfig{
			ShowGeneration: true,
			ShowStatusBar:  true,
		},
		Theme: ThemeConfig{
			Highlight: "#7C3AED",
			Subtle:    "#6B7280",
			Error:     "#EF4444",
			Success:   "#10B981",
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks cross-field constraints before the config is used.
func Validate(cfg Config) error {
	if cfg.RegistryFile == "" {
		return fmt.Errorf("registry_file cannot be empty")
	}
	if cfg.AutoReloadDebounce < 0 {
		return fmt.Errorf("auto_reload_debounce cannot be negative")
	}
	if cfg.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl cannot be negative")
	}
	return nil
}
