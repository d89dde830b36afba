// Package sentry wires the Sentry SDK to Better Stack's error ingestion,
// which accepts Sentry-protocol events.
package sentry

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds error tracking configuration.
type Config struct {
	// Token is the Better Stack Errors application token. Empty disables
	// error tracking entirely.
	Token string

	// Host is the ingesting host, e.g. "errors.betterstack.com".
	Host string

	// Environment identifies the deployment, e.g. "production".
	Environment string

	// Release is the application version.
	Release string

	// SampleRate controls event sampling (0 defaults to 1.0).
	SampleRate float64
}

// Initialize sets up the Sentry SDK. With an empty token it is a no-op.
func Initialize(cfg Config) error {
	if cfg.Token == "" {
		return nil
	}
	if cfg.Host == "" {
		return fmt.Errorf("sentry: host is required when token is set")
	}

	// Better Stack ignores the project id segment but the SDK requires one.
	dsn := fmt.Sprintf("https://%s@%s/1", cfg.Token, cfg.Host)

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		AttachStacktrace: true,
	})
}

// IsEnabled reports whether error tracking is active.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// Flush waits for buffered events to be delivered.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// CaptureException sends an error, using the request-scoped hub when the
// context carries one.
func CaptureException(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
