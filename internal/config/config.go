package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration loaded from the environment.
type Config struct {
	Port           string
	DataDir        string
	AllowedOrigins []string
	CacheTTL       time.Duration
	SeedCatalog    bool
}

// Load reads configuration from a .env file (if present) and the process
// environment, with defaults suitable for local development.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	return Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		DataDir:        getEnvOrDefault("DATA_DIR", "./data"),
		AllowedOrigins: splitOrigins(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		CacheTTL:       getDurationOrDefault("CACHE_TTL", 15*time.Minute),
		SeedCatalog:    getBoolOrDefault("SEED_CATALOG", true),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
