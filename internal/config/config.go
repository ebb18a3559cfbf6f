package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// insecureDefaultSecret is the fallback signing secret used when JWT_SECRET is
// not set. Keeping a default mirrors the deployment this service replaced; the
// warning in Load is the guard rail.
const insecureDefaultSecret = "change-me-in-production"

// Config holds the application configuration. It is built once in main and
// injected into the components that need it; nothing reads the environment
// after startup.
type Config struct {
	ServerPort       int
	DatabasePath     string
	JWTSecret        string
	TokenTTL         time.Duration
	CORSOrigins      []string
	LogRetentionDays int
}

// Load loads configuration from the environment (and an optional .env file)
// or sets defaults.
func Load() (*Config, error) {
	// Missing .env is fine; env vars alone are enough.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "720")) // 30 days
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS")
	}

	retentionDays, err := strconv.Atoi(getEnv("LOG_RETENTION_DAYS", "90"))
	if err != nil || retentionDays <= 0 {
		return nil, fmt.Errorf("invalid LOG_RETENTION_DAYS")
	}

	secret := getEnv("JWT_SECRET", insecureDefaultSecret)
	if secret == insecureDefaultSecret {
		log.Warn().Msg("JWT_SECRET not set, using insecure default signing secret")
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./mastery.db"),
		JWTSecret:        secret,
		TokenTTL:         time.Duration(ttlHours) * time.Hour,
		CORSOrigins:      parseOrigins(getEnv("CORS_ORIGINS", "")),
		LogRetentionDays: retentionDays,
	}, nil
}

// parseOrigins splits a comma-separated origin list, falling back to the
// development defaults when the variable is unset.
func parseOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{"http://localhost:3000", "http://localhost:3001"}
	}
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
