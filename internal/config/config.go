package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	AirportName     string
	AirportCapacity int

	// Weather source configuration.
	WeatherMode        string
	WeatherStormChance float64
	WeatherSeed        uint64

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Movement publishing (feature-flagged via KAFKA_ENABLED).
	KafkaEnabled        bool
	KafkaBrokers        []string
	KafkaMovementsTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	capacity, err := strconv.Atoi(sharedcfg.EnvOrDefault("AIRPORT_CAPACITY", "20"))
	if err != nil || capacity <= 0 {
		return nil, errors.New("invalid AIRPORT_CAPACITY")
	}

	chance, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("WEATHER_STORM_CHANCE", "0.2"), 64)
	if err != nil || chance < 0 || chance > 1 {
		return nil, errors.New("invalid WEATHER_STORM_CHANCE")
	}

	seed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("WEATHER_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid WEATHER_SEED")
	}

	cfg := &Config{
		AirportName:        sharedcfg.EnvOrDefault("AIRPORT_NAME", "LHR"),
		AirportCapacity:    capacity,
		WeatherMode:        sharedcfg.EnvOrDefault("WEATHER_MODE", "random"),
		WeatherStormChance: chance,
		WeatherSeed:        seed,
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,

		KafkaEnabled:        os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:        sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaMovementsTopic: sharedcfg.EnvOrDefault("KAFKA_MOVEMENTS_TOPIC", "airport-movements"),
	}

	if cfg.AirportName == "" {
		return nil, errors.New("AIRPORT_NAME is required")
	}
	switch cfg.WeatherMode {
	case "random", "clear", "stormy":
	default:
		return nil, errors.New("invalid WEATHER_MODE: want random, clear or stormy")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaMovementsTopic == "" {
		return nil, errors.New("KAFKA_MOVEMENTS_TOPIC is required")
	}

	return cfg, nil
}
