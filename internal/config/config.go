package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	JWTSecret      string
	TokenTTL       time.Duration
	CORSOrigin     string
	LogLevel       string
	AuditRetention time.Duration
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	ttlStr := getEnv("TOKEN_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttlStr, err)
	}

	retentionStr := getEnv("AUDIT_RETENTION", "720h")
	retention, err := time.ParseDuration(retentionStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_RETENTION %q: %w", retentionStr, err)
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./taskbox.db"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-jwt-secret"),
		TokenTTL:       ttl,
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:3000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AuditRetention: retention,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
