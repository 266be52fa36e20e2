package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DBPath              string
	ContentPath         string
	LogLevel            string
	MaxAttempts         int
	AnalyticsWorkers    int
	AnalyticsQueueSize  int
	StatsRefreshWorkers int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:storyquest.db"),
		ContentPath:         envOr("CONTENT_PATH", "content/adventure.json"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		MaxAttempts:         envIntOr("MAX_ATTEMPTS", 3),
		AnalyticsWorkers:    envIntOr("ANALYTICS_WORKER_COUNT", 2),
		AnalyticsQueueSize:  envIntOr("ANALYTICS_QUEUE_SIZE", 128),
		StatsRefreshWorkers: envIntOr("STATS_REFRESH_WORKER_COUNT", 1),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ContentPath == "" {
		return fmt.Errorf("CONTENT_PATH cannot be empty")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS must be at least 1")
	}
	if c.AnalyticsWorkers < 1 {
		return fmt.Errorf("ANALYTICS_WORKER_COUNT must be at least 1")
	}
	if c.AnalyticsQueueSize < 1 {
		return fmt.Errorf("ANALYTICS_QUEUE_SIZE must be at least 1")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
