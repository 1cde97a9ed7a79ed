package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sakif/game-store/internal/repository/sqlite"
)

var rollbackSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Keep the database schema in sync with the migrations embedded in the binary.

Running "migrate" alone is the same as "migrate up".

Subcommands:
  up      - Apply pending migrations
  down    - Roll back applied migrations
  status  - Show the applied schema version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateUp()
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateUp()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back applied migrations.

Examples:
  server migrate down             # Roll back the last migration
  server migrate down --steps 2   # Roll back the last two`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateDown()
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateStatus(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)

	migrateDownCmd.Flags().IntVar(&rollbackSteps, "steps", 1, "Number of migrations to roll back")
}

func runMigrateUp() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if err := sqlite.RunMigrations(cfg.DBPath); err != nil {
		return err
	}

	version, _, err := sqlite.SchemaVersion(cfg.DBPath)
	if err != nil {
		return err
	}
	log.Info("migrations applied",
		slog.String("database", cfg.DBPath),
		slog.Uint64("version", uint64(version)),
	)
	return nil
}

func runMigrateDown() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if err := sqlite.RollbackMigrations(cfg.DBPath, rollbackSteps); err != nil {
		return err
	}
	log.Info("migrations rolled back",
		slog.String("database", cfg.DBPath),
		slog.Int("steps", rollbackSteps),
	)
	return nil
}

func runMigrateStatus(cmd *cobra.Command) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	version, dirty, err := sqlite.SchemaVersion(cfg.DBPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "database: %s\n", cfg.DBPath)
	fmt.Fprintf(out, "version:  %d\n", version)
	if dirty {
		fmt.Fprintln(out, "state:    dirty (a migration failed part-way; fix it and force the version)")
	} else {
		fmt.Fprintln(out, "state:    clean")
	}
	return nil
}
