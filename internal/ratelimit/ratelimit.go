// Package ratelimit implements token bucket rate limiting for the HTTP
// surface: one global bucket for the whole process and per-session
// buckets for the chat endpoint.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket. Buckets refill continuously at refillRate
// tokens per second up to maxTokens.
type Limiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64
	lastRefill time.Time
}

// NewLimiter creates a full bucket.
func NewLimiter(maxTokens, refillRate float64) *Limiter {
	return &Limiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow consumes one token if available.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()

	l.tokens += elapsed * l.refillRate
	if l.tokens > l.maxTokens {
		l.tokens = l.maxTokens
	}
	l.lastRefill = now

	if l.tokens >= 1.0 {
		l.tokens -= 1.0
		return true
	}
	return false
}

// AvailableTokens returns the current token count without consuming.
func (l *Limiter) AvailableTokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := time.Since(l.lastRefill).Seconds()
	tokens := l.tokens + elapsed*l.refillRate
	if tokens > l.maxTokens {
		tokens = l.maxTokens
	}
	return tokens
}

// DropRecorder counts rejected requests. A nil recorder disables it.
type DropRecorder interface {
	RecordRateLimitDrop(scope string)
}

// KeyedLimiter tracks one bucket per key (session identifier). Idle
// buckets that have refilled completely are removed by a background
// sweep so the map does not grow with one-off sessions.
type KeyedLimiter struct {
	mu         sync.RWMutex
	limiters   map[string]*Limiter
	maxTokens  float64
	refillRate float64
	recorder   DropRecorder
}

// NewKeyedLimiter creates a per-key limiter and starts its cleanup loop.
func NewKeyedLimiter(maxTokens, refillRate float64, cleanup time.Duration, recorder DropRecorder) *KeyedLimiter {
	kl := &KeyedLimiter{
		limiters:   make(map[string]*Limiter),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		recorder:   recorder,
	}
	go kl.cleanupLoop(cleanup)
	return kl
}

// Allow consumes one token from the key's bucket, creating it on first use.
func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.RLock()
	limiter, exists := kl.limiters[key]
	kl.mu.RUnlock()

	if !exists {
		kl.mu.Lock()
		limiter, exists = kl.limiters[key]
		if !exists {
			limiter = NewLimiter(kl.maxTokens, kl.refillRate)
			kl.limiters[key] = limiter
		}
		kl.mu.Unlock()
	}

	allowed := limiter.Allow()
	if !allowed && kl.recorder != nil {
		kl.recorder.RecordRateLimitDrop("session")
	}
	return allowed
}

// Keys returns the number of tracked buckets.
func (kl *KeyedLimiter) Keys() int {
	kl.mu.RLock()
	defer kl.mu.RUnlock()
	return len(kl.limiters)
}

func (kl *KeyedLimiter) cleanupLoop(interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		kl.mu.Lock()
		for key, limiter := range kl.limiters {
			if limiter.AvailableTokens() >= kl.maxTokens {
				delete(kl.limiters, key)
			}
		}
		kl.mu.Unlock()
	}
}
