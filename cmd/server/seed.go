package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/game-store/internal/server"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample catalogue",
	Long: `Insert sample developers, categories, games, users and purchases.

The database is migrated first. Seeding refuses to run when games already
exist, so it never duplicates the catalogue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	db, err := server.OpenDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	services, err := server.NewServices(db, cfg, log)
	if err != nil {
		return err
	}

	summary, err := services.Seed(cmd.Context())
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"seeded %s: %d developers, %d categories, %d games, %d users, %d purchases\n",
		cfg.DBPath, summary.Developers, summary.Categories, summary.Games, summary.Users, summary.Purchases)
	return nil
}
