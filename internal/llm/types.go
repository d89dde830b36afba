// Package llm provides the completion client for the chat assistant.
// The assistant's prompt is assembled elsewhere; this package only sends
// it to an external provider and returns the text completion.
//
// Architecture (mirrored across providers):
//   - Gemini: google.golang.org/genai (official SDK)
//   - Groq:   github.com/openai/openai-go/v3 (OpenAI-compatible API)
//
// Failure handling is layered: the same model is retried with full-jitter
// backoff, then the next completer in the chain is tried. When the whole
// chain fails, the caller degrades to the keyword fallback responder.
package llm

import (
	"context"
	"time"
)

// Provider identifies a completion provider.
type Provider string

const (
	// ProviderGemini is Google's Gemini API.
	ProviderGemini Provider = "gemini"
	// ProviderGroq is Groq's OpenAI-compatible API.
	ProviderGroq Provider = "groq"
)

// GroqEndpoint is the OpenAI-compatible base URL for Groq.
const GroqEndpoint = "https://api.groq.com/openai/v1/"

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Completer sends a composed prompt to one provider/model pair.
type Completer interface {
	// Complete returns the text completion for the prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// Provider returns the provider type for logging and metrics.
	Provider() Provider
	// Model returns the model name.
	Model() string
	// Close releases resources held by the completer.
	Close() error
}

// RetryConfig defines retry behavior for completion calls.
type RetryConfig struct {
	// MaxAttempts is the number of attempts per completer, including the first.
	MaxAttempts int
	// InitialDelay is the base delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
}

// DefaultRetryConfig matches the provider-facing defaults used in production.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     3 * time.Second,
	}
}

// Config holds completion client configuration for all providers.
type Config struct {
	GeminiAPIKey string
	GroqAPIKey   string

	// Ordered model chains; first entry is primary.
	GeminiModels []string
	GroqModels   []string

	Retry RetryConfig
}

// Generation parameters shared by all providers. Temperature is kept low
// for stable, factual answers about department data.
const (
	completionTemperature = 0.4
	completionMaxTokens   = 1024
)
