// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port          int
	DatabasePath  string
	LogLevel      string
	JWTSecret     string
	TokenDuration time.Duration

	// Admin bootstrap credentials, used once to create the first account
	// when the user table is empty.
	AdminUsername string
	AdminPassword string
	AdminName     string
}

// Load reads configuration from environment variables, with a .env file as
// fallback when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnvAsInt("PORT", 8080),
		DatabasePath:  getEnv("DB_PATH", "./data/planboard.db"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenDuration: getEnvAsDuration("TOKEN_DURATION", 24*time.Hour),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.AdminPassword) < 6 {
		return fmt.Errorf("ADMIN_PASSWORD must be at least 6 characters")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
