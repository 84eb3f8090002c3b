package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	ModelName    string
	UseMockLLM   bool // true = canned LLM, useful for local dev and tests

	MaxHistoryMessages  int
	SessionTTL          time.Duration
	SweepInterval       time.Duration
	CurrencyLookback    int
	ForecastHorizonDays int

	ToolTimeout       time.Duration
	GenerationTimeout time.Duration

	LogLevel string // "debug", "info", "warn", "error"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE" || v == "yes"
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Load reads .env (if present) and all env vars, and builds the config.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg := &Config{
		Port: getEnv("TRAVEL_PORT", "8080"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		ModelName:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		UseMockLLM:   getBoolEnv("TRAVEL_USE_MOCK_LLM", false),

		MaxHistoryMessages:  getIntEnv("TRAVEL_MAX_HISTORY", 12),
		SessionTTL:          getDurationEnv("TRAVEL_SESSION_TTL", 60*time.Minute),
		SweepInterval:       getDurationEnv("TRAVEL_SWEEP_INTERVAL", 5*time.Minute),
		CurrencyLookback:    getIntEnv("TRAVEL_CURRENCY_LOOKBACK", 10),
		ForecastHorizonDays: getIntEnv("TRAVEL_FORECAST_HORIZON_DAYS", 16),

		ToolTimeout:       getDurationEnv("TRAVEL_TOOL_TIMEOUT", 15*time.Second),
		GenerationTimeout: getDurationEnv("TRAVEL_GENERATION_TIMEOUT", 30*time.Second),

		LogLevel: getEnv("TRAVEL_LOG_LEVEL", "info"),
	}

	if !cfg.UseMockLLM && cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY must be set (or TRAVEL_USE_MOCK_LLM=1)")
	}

	return cfg
}
