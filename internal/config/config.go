// Package config loads runtime settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIURL is the base URL of the remote API. Required.
	APIURL string
	// Port the HTTP server listens on.
	Port string
	// DBPath is the local SQLite file holding sessions and preferences.
	DBPath string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is "text" or "json".
	LogFormat string
}

// Load reads DESPENSA_* variables, merging in a .env file when one exists.
// Real environment variables win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:    os.Getenv("DESPENSA_API_URL"),
		Port:      envOr("DESPENSA_PORT", "8080"),
		DBPath:    envOr("DESPENSA_DB_PATH", "despensa.db"),
		LogLevel:  envOr("DESPENSA_LOG_LEVEL", "info"),
		LogFormat: envOr("DESPENSA_LOG_FORMAT", "text"),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("DESPENSA_API_URL is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
