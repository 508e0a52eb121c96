// Package config handles environment variable loading for ports, connection
// strings, and the pipeline's policy knobs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values for the application.
type Config struct {
	// Database connection string
	DatabaseURL string

	// Redis connection for the task queue
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// HTTP server port
	Port int

	// Number of task worker goroutines
	Workers int

	// Catalogs at or below this row count are deleted synchronously within
	// the request; larger ones go through the async task queue.
	SyncDeleteThreshold int64

	// Progress is written to the job tracker every this many processed
	// records.
	ProgressInterval int

	// Per-delivery timeout for outbound webhook calls
	WebhookTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}

	workers, err := intEnv("TASK_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 4
	}

	threshold, err := intEnv("SYNC_DELETE_THRESHOLD", 1000)
	if err != nil {
		return nil, err
	}

	interval, err := intEnv("IMPORT_PROGRESS_INTERVAL", 100)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = 100
	}

	webhookTimeout := 30 * time.Second
	if raw := os.Getenv("WEBHOOK_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid WEBHOOK_TIMEOUT: %w", err)
		}
		webhookTimeout = d
	}

	return &Config{
		DatabaseURL:         dbURL,
		RedisAddr:           redisAddr,
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		Port:                port,
		Workers:             workers,
		SyncDeleteThreshold: int64(threshold),
		ProgressInterval:    interval,
		WebhookTimeout:      webhookTimeout,
	}, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
