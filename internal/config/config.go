// Package config loads process configuration from the environment. A .env
// file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	YouTubeAPIKey string
	LogLevel      string
	LogFormat     string

	// ResolveTimeout bounds a play command that never resolves.
	ResolveTimeout time.Duration

	// WebSocket connection limits
	WSMaxClients int
	WSMaxPerIP   int
	WSConnRate   float64
	WSConnBurst  int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "5000"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.YouTubeAPIKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is required")
	}

	var err error
	if cfg.ResolveTimeout, err = getDuration("RESOLVE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.WSMaxClients, err = getInt("WS_MAX_CLIENTS", 500); err != nil {
		return nil, err
	}
	if cfg.WSMaxPerIP, err = getInt("WS_MAX_PER_IP", 10); err != nil {
		return nil, err
	}
	if cfg.WSConnRate, err = getFloat("WS_CONN_RATE", 10); err != nil {
		return nil, err
	}
	if cfg.WSConnBurst, err = getInt("WS_CONN_BURST", 10); err != nil {
		return nil, err
	}

	if cfg.ResolveTimeout <= 0 {
		return nil, fmt.Errorf("RESOLVE_TIMEOUT must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}
