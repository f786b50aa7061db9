package cmd

import (
	"context"
	"errors"
	"io"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/airport-control/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/airport-control/internal/adapter/kafka"
	"github.com/couchcryptid/airport-control/internal/config"
	"github.com/couchcryptid/airport-control/internal/domain"
	"github.com/couchcryptid/airport-control/internal/observability"
	"github.com/couchcryptid/airport-control/internal/tower"
	"github.com/couchcryptid/airport-control/internal/weather"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the airport control HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	w, err := weather.New(cfg.WeatherMode, cfg.WeatherStormChance, cfg.WeatherSeed, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	logger.Info("weather source configured", "mode", cfg.WeatherMode, "storm_chance", cfg.WeatherStormChance)

	// Movement publishing is feature-flagged via KAFKA_ENABLED.
	var publisher tower.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("movement publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaMovementsTopic)
	} else {
		logger.Info("movement publishing disabled")
	}

	// Confirmations are already logged and returned to HTTP callers.
	airport := domain.NewAirport(cfg.AirportName, w,
		domain.WithCapacity(cfg.AirportCapacity),
		domain.WithOutput(io.Discard),
	)
	t := tower.New(airport, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, t, t, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info("airport open", "airport", cfg.AirportName, "capacity", cfg.AirportCapacity)

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		logger.Error("http server error", "error", runErr)
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return runErr
}
