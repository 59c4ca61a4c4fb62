// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"biliredirect/internal/config"
	"biliredirect/internal/logger"
)

// Global flags
var (
	flagConfig   string
	flagPort     int
	flagBaseURL  string
	flagLogLevel string
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "biliredirect",
	Short: "Redirect Bilibili video links to their CDN streams",
	Long: `biliredirect is a small HTTP service that resolves a Bilibili video link
to the CDN URL of its stream and answers with a redirect to it.

Running it without a subcommand starts the server.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: loadConfig,
	RunE:              serveRun,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: $XDG_CONFIG_HOME/biliredirect/config.toml)")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 0, "Port to listen on (default: 30000)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Public base URL shown in usage text")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug | info | warn | error")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration, then builds the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnvFiles(".env"); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override everything else
	if flagPort != 0 {
		cfg.Port = flagPort
	}
	if flagBaseURL != "" {
		cfg.BaseURL = strings.TrimRight(flagBaseURL, "/")
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log = logger.New(cfg)
	log.Debug().Interface("config", cfg).Msg("configuration loaded")
	return nil
}
