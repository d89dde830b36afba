package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aimldept/deptbot-go/internal/logger"
)

// MetricsRecorder receives completion telemetry from the chain. A nil
// recorder disables instrumentation.
type MetricsRecorder interface {
	ObserveCompletion(provider, model, status string, duration time.Duration)
	RecordFallback(from, to string)
}

// Chain tries completers in order, retrying transient failures on each
// before moving to the next. The zero-value chain is not usable; use NewChain.
type Chain struct {
	completers []Completer
	retry      RetryConfig
	metrics    MetricsRecorder
	log        *logger.Logger
}

// NewChain builds a fallback chain over the given completers.
func NewChain(completers []Completer, retry RetryConfig, metrics MetricsRecorder, log *logger.Logger) (*Chain, error) {
	if len(completers) == 0 {
		return nil, errors.New("llm: chain requires at least one completer")
	}
	return &Chain{
		completers: completers,
		retry:      retry,
		metrics:    metrics,
		log:        log.WithModule("llm"),
	}, nil
}

// Complete implements Completer by delegating down the chain.
func (c *Chain) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for i, completer := range c.completers {
		text, err := c.completeWithRetry(ctx, completer, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ClassifyError(err) == ActionFail {
			break
		}

		if i+1 < len(c.completers) {
			next := c.completers[i+1]
			c.log.Warn("Falling back to next provider",
				"from", completerLabel(completer),
				"to", completerLabel(next),
				"error", err.Error(),
			)
			if c.metrics != nil {
				c.metrics.RecordFallback(completerLabel(completer), completerLabel(next))
			}
		}
	}

	return "", fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

func (c *Chain) completeWithRetry(ctx context.Context, completer Completer, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := CalculateBackoff(attempt-1, c.retry)
			c.log.Debug("Retrying completion",
				"provider", completer.Provider().String(),
				"model", completer.Model(),
				"attempt", attempt+1,
				"delay", delay.String(),
			)
			if err := Sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		start := time.Now()
		text, err := completer.Complete(ctx, prompt)
		c.observe(completer, err, time.Since(start))
		if err == nil {
			return text, nil
		}
		lastErr = err

		action := ClassifyError(err)
		if action != ActionRetry {
			return "", err
		}
	}

	return "", lastErr
}

func (c *Chain) observe(completer Completer, err error, duration time.Duration) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.ObserveCompletion(completer.Provider().String(), completer.Model(), status, duration)
}

// Provider implements Completer, reporting the primary completer's provider.
func (c *Chain) Provider() Provider {
	return c.completers[0].Provider()
}

// Model implements Completer, reporting the primary completer's model.
func (c *Chain) Model() string {
	return c.completers[0].Model()
}

// Close implements Completer, closing every completer in the chain.
func (c *Chain) Close() error {
	var errs []error
	for _, completer := range c.completers {
		if err := completer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func completerLabel(c Completer) string {
	return c.Provider().String() + "/" + c.Model()
}
