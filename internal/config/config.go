// Package config loads the review server's environment configuration.
// A .env file next to the process is honored when present.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	AllowedOrigin string
	LogLevel      string
}

func Load() *Config {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	return &Config{
		Addr:          getEnv("SHOOTDECK_ADDR", ":8080"),
		AllowedOrigin: getEnv("SHOOTDECK_ALLOWED_ORIGIN", "*"),
		LogLevel:      getEnv("SHOOTDECK_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
