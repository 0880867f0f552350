package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	OpenAIAPIKey        string
	OpenAIModel         string
	WordGenTimeoutSec   int
	EventWorkerCount    int
	EventQueueSize      int
	IdempotencyTTLHours int
	DefaultTimezone     string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:tinywords.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		OpenAIAPIKey:        envOr("OPENAI_API_KEY", ""),
		OpenAIModel:         envOr("OPENAI_MODEL", "gpt-4o"),
		WordGenTimeoutSec:   envIntOr("WORD_GEN_TIMEOUT_SEC", 20),
		EventWorkerCount:    envIntOr("EVENT_WORKER_COUNT", 1),
		EventQueueSize:      envIntOr("EVENT_QUEUE_SIZE", 256),
		IdempotencyTTLHours: envIntOr("IDEMPOTENCY_TTL_HOURS", 24),
		DefaultTimezone:     envOr("DEFAULT_TIMEZONE", "UTC"),
	}
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
