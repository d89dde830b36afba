// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Server
	EnvPort            = "DEPT_PORT"
	EnvLogLevel        = "DEPT_LOG_LEVEL"
	EnvShutdownTimeout = "DEPT_SHUTDOWN_TIMEOUT"
	EnvEnvironment     = "DEPT_ENVIRONMENT"

	// Data
	EnvDataDir     = "DEPT_DATA_DIR"
	EnvFixturesDir = "DEPT_FIXTURES_DIR"

	// LLM (at least one API key is required)
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGroqAPIKey   = "GROQ_API_KEY"
	EnvGeminiModels = "DEPT_GEMINI_MODELS"
	EnvGroqModels   = "DEPT_GROQ_MODELS"
	EnvLLMTimeout   = "DEPT_LLM_TIMEOUT"

	// Rate limits
	EnvGlobalRateRPS     = "DEPT_GLOBAL_RATE_RPS"
	EnvSessionRateBurst  = "DEPT_SESSION_RATE_BURST"
	EnvSessionRateRefill = "DEPT_SESSION_RATE_REFILL"

	// Metrics
	EnvMetricsUsername = "DEPT_METRICS_USERNAME"
	EnvMetricsPassword = "DEPT_METRICS_PASSWORD"

	// Observability
	EnvBetterStackToken    = "DEPT_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "DEPT_BETTERSTACK_ENDPOINT"
	EnvSentryToken         = "DEPT_SENTRY_TOKEN"
	EnvSentryHost          = "DEPT_SENTRY_HOST"

	// Transcript archive (optional, S3-compatible)
	EnvArchiveEndpoint  = "DEPT_ARCHIVE_ENDPOINT"
	EnvArchiveAccessKey = "DEPT_ARCHIVE_ACCESS_KEY_ID"
	EnvArchiveSecretKey = "DEPT_ARCHIVE_SECRET_ACCESS_KEY"
	EnvArchiveBucket    = "DEPT_ARCHIVE_BUCKET"
	EnvArchivePrefix    = "DEPT_ARCHIVE_PREFIX"
)
