package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	EvalModel         string
	GraphWorkerCount  int
	GraphQueueSize    int
	ReviewBatchSize   int
	PracticeBatchSize int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:mindvault.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		OpenAIAPIKey:      envOr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		EvalModel:         envOr("EVAL_MODEL", "gpt-4o-mini"),
		GraphWorkerCount:  envIntOr("GRAPH_WORKER_COUNT", 2),
		GraphQueueSize:    envIntOr("GRAPH_QUEUE_SIZE", 64),
		ReviewBatchSize:   envIntOr("REVIEW_BATCH_SIZE", 20),
		PracticeBatchSize: envIntOr("PRACTICE_BATCH_SIZE", 10),
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.GraphWorkerCount < 1 {
		problems = append(problems, "GRAPH_WORKER_COUNT must be at least 1")
	}
	if c.GraphQueueSize < 1 {
		problems = append(problems, "GRAPH_QUEUE_SIZE must be at least 1")
	}
	if c.ReviewBatchSize < 1 {
		problems = append(problems, "REVIEW_BATCH_SIZE must be at least 1")
	}
	if c.PracticeBatchSize < 1 {
		problems = append(problems, "PRACTICE_BATCH_SIZE must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
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
