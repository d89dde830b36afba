package llm

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// CalculateBackoff returns a full-jitter exponential backoff delay for the
// given retry attempt (0-based).
func CalculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	backoff := float64(cfg.InitialDelay) * math.Pow(2, float64(attempt))
	if backoff > float64(cfg.MaxDelay) {
		backoff = float64(cfg.MaxDelay)
	}
	// Full jitter: uniform in [0, backoff).
	return time.Duration(rand.Float64() * backoff)
}

// Sleep waits for the given duration or until the context is done.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
