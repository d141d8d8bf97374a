package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Port         string
	GinMode      string
	StoreDriver  string
	DatabaseURL  string
	DataPath     string
	SeedPath     string
	LatencyScale float64
	AMQPURL      string
	LogLevel     string
}

// LoadDotEnv loads the first .env found in the working directory or its parents
func LoadDotEnv() {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}
}

// Load reads Config from the environment
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8000"),
		GinMode:     os.Getenv("GIN_MODE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DataPath:    getEnv("DATA_PATH", "crewplan.db"),
		SeedPath:    os.Getenv("SEED_PATH"),
		AMQPURL:     os.Getenv("AMQP_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	// Postgres is implied by DATABASE_URL unless a driver is forced
	cfg.StoreDriver = os.Getenv("STORE_DRIVER")
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = DriverMemory
		if cfg.DatabaseURL != "" {
			cfg.StoreDriver = DriverPostgres
		}
	}
	switch cfg.StoreDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	cfg.LatencyScale = 1.0
	if raw := os.Getenv("STORE_LATENCY_SCALE"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil || scale < 0 {
			return Config{}, fmt.Errorf("invalid STORE_LATENCY_SCALE %q", raw)
		}
		cfg.LatencyScale = scale
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
