// Package config provides application configuration management.
// Settings are read from environment variables (with .env support) and
// validated before the server starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default model chains. First entry is primary, the rest are fallbacks.
var (
	DefaultGeminiModels = []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"}
	DefaultGroqModels   = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	Environment     string

	// Data
	DataDir     string // Directory for the SQLite content mirror
	FixturesDir string // Optional override for the embedded JSON fixtures

	// LLM
	GeminiAPIKey string
	GroqAPIKey   string
	GeminiModels []string
	GroqModels   []string
	LLMTimeout   time.Duration

	// Rate limits
	GlobalRateRPS     float64
	SessionRateBurst  float64
	SessionRateRefill float64 // tokens per second

	// Metrics basic auth (empty password = no auth)
	MetricsUsername string
	MetricsPassword string

	// Observability
	BetterStackToken    string
	BetterStackEndpoint string
	SentryToken         string
	SentryHost          string

	// Transcript archive (all four required to enable)
	ArchiveEndpoint  string
	ArchiveAccessKey string
	ArchiveSecretKey string
	ArchiveBucket    string
	ArchivePrefix    string
}

// Load reads configuration from environment variables.
// A .env file is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "8080"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),
		Environment:     getEnv(EnvEnvironment, "development"),

		DataDir:     getEnv(EnvDataDir, defaultDataDir()),
		FixturesDir: getEnv(EnvFixturesDir, ""),

		GeminiAPIKey: getEnv(EnvGeminiAPIKey, ""),
		GroqAPIKey:   getEnv(EnvGroqAPIKey, ""),
		GeminiModels: getListEnv(EnvGeminiModels, DefaultGeminiModels),
		GroqModels:   getListEnv(EnvGroqModels, DefaultGroqModels),
		LLMTimeout:   getDurationEnv(EnvLLMTimeout, 30*time.Second),

		GlobalRateRPS:     getFloatEnv(EnvGlobalRateRPS, 100.0),
		SessionRateBurst:  getFloatEnv(EnvSessionRateBurst, 6.0),
		SessionRateRefill: getFloatEnv(EnvSessionRateRefill, 0.2), // 1 per 5s

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
		SentryToken:         getEnv(EnvSentryToken, ""),
		SentryHost:          getEnv(EnvSentryHost, ""),

		ArchiveEndpoint:  getEnv(EnvArchiveEndpoint, ""),
		ArchiveAccessKey: getEnv(EnvArchiveAccessKey, ""),
		ArchiveSecretKey: getEnv(EnvArchiveSecretKey, ""),
		ArchiveBucket:    getEnv(EnvArchiveBucket, ""),
		ArchivePrefix:    getEnv(EnvArchivePrefix, "transcripts"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that required configuration values are set.
// A missing completion API key is a fatal startup condition, not a
// runtime-recoverable one.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.GeminiAPIKey == "" && c.GroqAPIKey == "" {
		errs = append(errs, errors.New("a completion provider API key is required (set "+EnvGeminiAPIKey+" or "+EnvGroqAPIKey+")"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvLLMTimeout, c.LLMTimeout))
	}
	if c.GlobalRateRPS <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvGlobalRateRPS, c.GlobalRateRPS))
	}
	if c.SessionRateBurst <= 0 || c.SessionRateRefill <= 0 {
		errs = append(errs, errors.New("session rate limit burst and refill must be positive"))
	}

	return errors.Join(errs...)
}

// SQLitePath returns the full path to the SQLite content mirror.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "content.db")
}

// ArchiveEnabled reports whether transcript archival is fully configured.
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveEndpoint != "" && c.ArchiveAccessKey != "" &&
		c.ArchiveSecretKey != "" && c.ArchiveBucket != ""
}

func defaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getListEnv parses a comma-separated list, trimming whitespace and
// dropping empty entries.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
