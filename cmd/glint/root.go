package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/glint"
	"github.com/aretw0/glint/internal/config"
	"github.com/aretw0/glint/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "glint",
	Short:         "Glint persists web sessions through pluggable storage adapters",
	Long:          `Glint inspects and serves the sessions kept by a glint store (memory, Redis, LevelDB or files).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadConfig reads the --config file. An explicitly requested file must exist.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); err != nil {
			return config.Config{}, fmt.Errorf("config file: %w", err)
		}
	}
	return config.Load(path)
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	level := logging.ParseLevel(cfg.Log.Level)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// openService loads the configuration and opens the store it describes.
func openService(cmd *cobra.Command) (*glint.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	svc, err := glint.Open(cfg, glint.WithLogger(newLogger(cmd, cfg)))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return svc, nil
}
