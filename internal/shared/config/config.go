package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	// Base URL used when generating public application links for postings.
	PublicBaseURL string

	// External evaluator (AI scoring service).
	EvaluatorBaseURL    string
	EvaluatorTimeout    time.Duration
	EvaluatorQueueSize  int
	EvaluatorWorkers    int
	DefaultItemMaxScore int

	SweepInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 env,
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		DatabaseURL:         dbURL,
		PublicBaseURL:       getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		EvaluatorBaseURL:    getEnv("EVALUATOR_BASE_URL", "http://localhost:8000"),
		EvaluatorTimeout:    getEnvDuration("EVALUATOR_TIMEOUT", 3*time.Second),
		EvaluatorQueueSize:  getEnvInt("EVALUATOR_QUEUE_SIZE", 64),
		EvaluatorWorkers:    getEnvInt("EVALUATOR_WORKERS", 2),
		DefaultItemMaxScore: getEnvInt("EVALUATOR_DEFAULT_ITEM_MAX_SCORE", 10),
		SweepInterval:       getEnvDuration("SWEEP_INTERVAL", 24*time.Hour),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid int %q; using %d", key, raw, def)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid duration %q; using %s", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
