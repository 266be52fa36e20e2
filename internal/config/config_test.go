package config_test

import (
	"os"
	"testing"

	"github.com/lucasb/storyquest/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		DBPath:             "test.db",
		ContentPath:        "content/adventure.json",
		LogLevel:           "INFO",
		MaxAttempts:        3,
		AnalyticsWorkers:   2,
		AnalyticsQueueSize: 128,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_EmptyContentPath(t *testing.T) {
	cfg := validConfig()
	cfg.ContentPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONTENT_PATH cannot be empty")
}

func TestValidate_ZeroMaxAttempts(t *testing.T) {
	cfg := validConfig()
	cfg.MaxAttempts = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_ATTEMPTS")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "CONTENT_PATH", "LOG_LEVEL", "MAX_ATTEMPTS"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:storyquest.db", cfg.DBPath)
	assert.Equal(t, "content/adventure.json", cfg.ContentPath)
	assert.Equal(t, 3, cfg.MaxAttempts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("MAX_ATTEMPTS", "5")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5, cfg.MaxAttempts)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "lots")

	cfg := config.Load()

	assert.Equal(t, 3, cfg.MaxAttempts)
}
