package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	Host        string

	DataDir      string
	StoreBackend string // memory, sqlite, remote
	RemoteKVURL  string

	SyncPollInterval time.Duration
	LogLevel         string
	CORSOrigins      string
}

func Load() (*Config, error) {
	// Load .env file if exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		Port:         getEnv("PORT", "8080"),
		Host:         getEnv("HOST", "0.0.0.0"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		StoreBackend: getEnv("STORE_BACKEND", "sqlite"),
		RemoteKVURL:  getEnv("REMOTE_KV_URL", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
	}

	switch cfg.StoreBackend {
	case "memory", "sqlite", "remote":
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND: %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == "remote" && cfg.RemoteKVURL == "" {
		return nil, fmt.Errorf("REMOTE_KV_URL is required when STORE_BACKEND=remote")
	}

	// Parse duration
	if interval := getEnv("SYNC_POLL_INTERVAL", "30s"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return nil, fmt.Errorf("invalid SYNC_POLL_INTERVAL: %w", err)
		}
		cfg.SyncPollInterval = d
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
