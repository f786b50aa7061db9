// Package cmd provides the CLI commands for the airport service.
package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the airport CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airport",
		Short: "Airport control tower",
		Long: `Runs a single airport that lets planes land and take off,
subject to its capacity and the weather.

Configuration is read from environment variables (AIRPORT_NAME,
AIRPORT_CAPACITY, WEATHER_MODE, HTTP_ADDR, KAFKA_ENABLED, ...).`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSimulateCmd())

	return cmd
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}
