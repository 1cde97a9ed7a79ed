package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/game-store/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server on PORT.

Pending migrations are applied before the first request is accepted.
SIGINT or SIGTERM stops the server gracefully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	srv, err := server.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start blocks until shutdown and closes the database.
	return srv.Start(cmd.Context())
}
