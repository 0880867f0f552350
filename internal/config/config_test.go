package config_test

import (
	"testing"

	"github.com/hyerin/tinywords/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "DB_PATH", "LOG_LEVEL", "OPENAI_API_KEY", "OPENAI_MODEL",
		"WORD_GEN_TIMEOUT_SEC", "EVENT_WORKER_COUNT", "EVENT_QUEUE_SIZE",
		"IDEMPOTENCY_TTL_HOURS", "DEFAULT_TIMEZONE",
	} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:tinywords.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, 20, cfg.WordGenTimeoutSec)
	assert.Equal(t, 1, cfg.EventWorkerCount)
	assert.Equal(t, 256, cfg.EventQueueSize)
	assert.Equal(t, 24, cfg.IdempotencyTTLHours)
	assert.Equal(t, "UTC", cfg.DefaultTimezone)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("EVENT_QUEUE_SIZE", "64")
	t.Setenv("DEFAULT_TIMEZONE", "Asia/Seoul")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 64, cfg.EventQueueSize)
	assert.Equal(t, "Asia/Seoul", cfg.DefaultTimezone)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("EVENT_WORKER_COUNT", "lots")

	cfg := config.Load()

	assert.Equal(t, 1, cfg.EventWorkerCount)
}
