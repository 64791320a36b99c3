package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mlbwar-engine/internal/config"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:           "engine",
	Short:         "engine scrapes MLB team-season appearances and fits wins against WAR.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	def := os.Getenv("ENGINE_DATA_DIR")
	if def == "" {
		def = "."
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default <data-dir>/config.yml, created on first run)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", def, "directory for config, ledger and output")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves, bootstraps and validates the config. It returns the
// path it loaded so serve can save back to it.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	path := cfgPath
	if path == "" {
		p, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			return config.Config{}, "", fmt.Errorf("config bootstrap failed: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if cmd.Flags().Changed("data-dir") || cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}

	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !vr.OK() {
		return config.Config{}, "", fmt.Errorf("config %s is invalid: %v", path, vr.Errors)
	}
	return cfg, path, nil
}
