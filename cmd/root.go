package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appadapter "github.com/zjrosen/lattice/internal/application/adapter"
	"github.com/zjrosen/lattice/internal/config"
	"github.com/zjrosen/lattice/internal/log"
	"github.com/zjrosen/lattice/internal/tracing"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "lattice",
	Short:   "An adapter registry over interface lattices",
	Long:    `Lattice loads an interface hierarchy and adapter registrations from a YAML document and answers lookup, lookup-all, and subscription queries over the inheritance lattice.`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .lattice/config.yaml, else ~/.config/lattice/config.yaml)")
	rootCmd.PersistentFlags().StringP("registry", "r", "",
		"registry document (default: .lattice/registry.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write debug logs to .lattice/debug.log")

	_ = viper.BindPFlag("registry_file", rootCmd.PersistentFlags().Lookup("registry"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("registry_file", defaults.RegistryFile)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("auto_reload_debounce", defaults.AutoReloadDebounce)
	viper.SetDefault("cache_ttl", defaults.CacheTTL)
	viper.SetDefault("ui.show_generation", defaults.UI.ShowGeneration)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .lattice/config.yaml (current directory)
		// 2. ~/.config/lattice/config.yaml (user config)
		if _, err := os.Stat(".lattice/config.yaml"); err == nil {
			viper.SetConfigFile(".lattice/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "lattice"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".lattice/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if debug || os.Getenv("LATTICE_DEBUG") != "" {
		if cleanup, err := log.Init(".lattice/debug.log"); err == nil {
			cobra.OnFinalize(cleanup)
		}
	} else {
		log.SetEnabled(false)
	}
}

// newService builds a service from the resolved config and loads the
// registry document.
func newService() (*appadapter.Service, *tracing.Provider, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, nil, err
	}

	svc := appadapter.NewService(
		appadapter.WithTracer(provider.Tracer()),
		appadapter.WithCacheTTL(time.Duration(cfg.CacheTTL)*time.Second),
	)
	if err := svc.LoadFile(cfg.RegistryFile); err != nil {
		_ = svc.Close()
		return nil, nil, err
	}
	return svc, provider, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
