package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/aimldept/deptbot-go/internal/logger"
)

// NewChainFromConfig builds the completion chain from configuration.
// Gemini models come first, then Groq models, each in configured order.
// At least one provider must have an API key.
func NewChainFromConfig(ctx context.Context, cfg Config, metrics MetricsRecorder, log *logger.Logger) (*Chain, error) {
	var completers []Completer

	if cfg.GeminiAPIKey != "" {
		for _, model := range cfg.GeminiModels {
			completer, err := NewGeminiCompleter(ctx, cfg.GeminiAPIKey, model)
			if err != nil {
				return nil, fmt.Errorf("gemini completer %s: %w", model, err)
			}
			completers = append(completers, completer)
		}
	}

	if cfg.GroqAPIKey != "" {
		for _, model := range cfg.GroqModels {
			completers = append(completers, NewGroqCompleter(cfg.GroqAPIKey, model))
		}
	}

	if len(completers) == 0 {
		return nil, errors.New("llm: no provider configured, set GEMINI_API_KEY or GROQ_API_KEY")
	}

	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryConfig()
	}

	chain, err := NewChain(completers, retry, metrics, log)
	if err != nil {
		return nil, err
	}

	log.WithModule("llm").Info("Completion chain ready",
		"completers", len(completers),
		"primary", completerLabel(completers[0]),
	)
	return chain, nil
}
