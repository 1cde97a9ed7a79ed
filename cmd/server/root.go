package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/game-store/internal/config"
	"github.com/sakif/game-store/internal/logger"
)

var (
	// Global flags; when set they override the environment.
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Loja de Jogos Online - game store API",
	Long: `Serves the game store HTTP API backed by a SQLite database.

Running without a subcommand is the same as "server serve".

Commands:
  serve    - Start the HTTP server (applies pending migrations first)
  migrate  - Apply, roll back or inspect schema migrations
  seed     - Insert the sample catalogue into an empty database`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger every command uses.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}
