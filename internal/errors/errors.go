// Package errors provides domain-specific error types and sentinel errors
// shared across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates a rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrProviderUnavailable indicates every configured completion provider failed.
	ErrProviderUnavailable = errors.New("completion provider unavailable")

	// ErrFixtureInvalid indicates a content fixture failed validation at load time.
	ErrFixtureInvalid = errors.New("invalid fixture record")
)

// ValidationError represents a request validation failure surfaced as HTTP 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ProviderError wraps a completion API failure with provider context.
// It is caught by the chat service and degraded to the fallback responder,
// never surfaced to the HTTP caller.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s failed (status=%d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new provider error.
func NewProviderError(provider string, statusCode int, err error) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: statusCode, Err: err}
}
