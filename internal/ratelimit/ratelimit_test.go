package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestLimiterConsumesTokens(t *testing.T) {
	l := NewLimiter(3, 0.0)

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("Allow() call %d = false, want true", i+1)
		}
	}
	if l.Allow() {
		t.Error("Allow() after bucket drained = true, want false")
	}
}

func TestLimiterRefills(t *testing.T) {
	// 100 tokens/sec so the bucket refills within the test's patience.
	l := NewLimiter(1, 100.0)

	if !l.Allow() {
		t.Fatal("first Allow() = false, want true")
	}
	if l.Allow() {
		t.Fatal("second immediate Allow() = true, want false")
	}

	time.Sleep(50 * time.Millisecond)
	if !l.Allow() {
		t.Error("Allow() after refill window = false, want true")
	}
}

func TestLimiterAvailableTokensCapped(t *testing.T) {
	l := NewLimiter(5, 1000.0)
	time.Sleep(10 * time.Millisecond)

	if got := l.AvailableTokens(); got > 5 {
		t.Errorf("AvailableTokens() = %v, want at most 5", got)
	}
}

type countingRecorder struct {
	mu    sync.Mutex
	drops int
}

func (c *countingRecorder) RecordRateLimitDrop(_ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drops++
}

func TestKeyedLimiterIsolatesKeys(t *testing.T) {
	kl := NewKeyedLimiter(1, 0.0, time.Hour, nil)

	if !kl.Allow("a") {
		t.Fatal("Allow(a) = false, want true")
	}
	if kl.Allow("a") {
		t.Error("second Allow(a) = true, want false")
	}
	if !kl.Allow("b") {
		t.Error("Allow(b) = false, want true; keys must not share buckets")
	}
	if kl.Keys() != 2 {
		t.Errorf("Keys() = %d, want 2", kl.Keys())
	}
}

func TestKeyedLimiterRecordsDrops(t *testing.T) {
	recorder := &countingRecorder{}
	kl := NewKeyedLimiter(1, 0.0, time.Hour, recorder)

	kl.Allow("a")
	kl.Allow("a")
	kl.Allow("a")

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.drops != 2 {
		t.Errorf("drops = %d, want 2", recorder.drops)
	}
}

func TestKeyedLimiterConcurrentAccess(t *testing.T) {
	kl := NewKeyedLimiter(1000, 0.0, time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				kl.Allow("shared")
			}
		}()
	}
	wg.Wait()

	if kl.Keys() != 1 {
		t.Errorf("Keys() = %d, want 1", kl.Keys())
	}
}
