package llm

import (
	"context"
	"errors"
	"strings"

	domerrors "github.com/aimldept/deptbot-go/internal/errors"
)

// ErrAllProvidersFailed is returned when every completer in the chain failed.
var ErrAllProvidersFailed = errors.New("llm: all providers failed")

// ErrEmptyCompletion is returned when a provider responds without any text.
var ErrEmptyCompletion = errors.New("llm: provider returned empty completion")

// ErrorAction classifies what to do after a completion failure.
type ErrorAction int

const (
	// ActionRetry retries the same completer after a backoff.
	ActionRetry ErrorAction = iota
	// ActionFallback skips retries and moves to the next completer.
	ActionFallback
	// ActionFail aborts the whole chain.
	ActionFail
)

// String returns the string representation of the action.
func (a ErrorAction) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionFallback:
		return "fallback"
	case ActionFail:
		return "fail"
	default:
		return "unknown"
	}
}

// ClassifyError maps a completion error to a recovery action.
//
// Quota exhaustion is the common failure on free tiers, so it jumps
// straight to the next completer instead of burning retries. Transient
// server and network errors retry. Auth and request errors fail fast
// because retries cannot fix them.
func ClassifyError(err error) ErrorAction {
	if err == nil {
		return ActionFail
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ActionFail
	}

	var provErr *domerrors.ProviderError
	if errors.As(err, &provErr) {
		switch {
		case provErr.StatusCode == 429:
			return ActionFallback
		case provErr.StatusCode >= 500:
			return ActionRetry
		case provErr.StatusCode == 400 || provErr.StatusCode == 401 ||
			provErr.StatusCode == 403 || provErr.StatusCode == 404:
			return ActionFail
		}
	}

	msg := strings.ToLower(err.Error())

	if containsAny(msg, "quota", "rate limit", "resource_exhausted", "resource exhausted", "429") {
		return ActionFallback
	}
	if containsAny(msg, "500", "502", "503", "504", "internal error", "unavailable",
		"overloaded", "timeout", "connection reset", "connection refused", "eof") {
		return ActionRetry
	}
	if containsAny(msg, "api key", "unauthorized", "unauthenticated", "permission denied",
		"invalid argument", "not found") {
		return ActionFail
	}

	// Unknown errors get one retry cycle before the chain moves on.
	return ActionRetry
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
