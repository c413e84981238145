// Package cli implements the liftlog command tree.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "liftlog",
	Short:         "Training log analytics over plain JSON session files",
	Long:          `liftlog analyzes a directory of per-day workout JSON files: estimated one-rep maxes, weekly volume, rolling KPIs, goal tracking, live workout logging, charts, and an HTTP/MCP API.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagConfig    string
	flagHistory   string
	flagGoalsFile string
	flagJSON      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "liftlog.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagHistory, "history", "", "Session directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagGoalsFile, "goals-file", "", "Goals file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of text")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger().Error("command failed", "error", err)
		os.Exit(1)
	}
}

func logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagHistory != "" {
		cfg.History = flagHistory
	}
	if flagGoalsFile != "" {
		cfg.GoalsFile = flagGoalsFile
	}
	return cfg, nil
}

func openStore() (*store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return store.New(cfg.History, cfg.GoalsFile, logger()), cfg, nil
}
