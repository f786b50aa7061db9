package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/airport-control/internal/observability"
	"github.com/couchcryptid/airport-control/internal/scenario"
	"github.com/couchcryptid/airport-control/internal/tower"
)

func newSimulateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Replay a scripted scenario against an in-process airport",
		Long: `Loads a YAML scenario, replays every step against a fresh airport
and prints the outcome of each one. Exits non-zero when any step's
outcome differs from its expect_error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			t := tower.New(s.NewAirport(io.Discard), nil, logger, observability.NewMetricsWith(prometheus.NewRegistry()))
			report, err := scenario.Run(cmd.Context(), s, t)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, o := range report.Outcomes {
				fmt.Fprintf(out, "%s %d %s: %s\n", mark(o), o.Step, describe(o), o.Message)
			}
			fmt.Fprintf(out, "%d steps, %d failed\n", len(report.Outcomes), report.Failed)

			if report.Failed > 0 {
				return fmt.Errorf("%d of %d steps did not match expectations", report.Failed, len(report.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log tower activity to stderr")

	return cmd
}

func mark(o scenario.Outcome) string {
	if o.Passed {
		return "ok  "
	}
	return "FAIL"
}

func describe(o scenario.Outcome) string {
	if o.Plane == "" {
		return o.Action
	}
	return o.Action + " " + o.Plane
}
