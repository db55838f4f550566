package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowBudget(t *testing.T) {
	pl := NewPostLimiter(0, 2)

	for i := 0; i < 2; i++ {
		if !pl.Allow() {
			t.Fatalf("post %d should be allowed", i+1)
		}
		pl.RecordPost()
	}
	if pl.Allow() {
		t.Error("third post should exceed the cycle budget")
	}

	pl.ResetCycle()
	if !pl.Allow() {
		t.Error("budget should refill after ResetCycle")
	}
}

func TestAllowUnlimited(t *testing.T) {
	pl := NewPostLimiter(0, 0)
	for i := 0; i < 100; i++ {
		if !pl.Allow() {
			t.Fatal("maxPerCycle=0 must never block")
		}
		pl.RecordPost()
	}
}

func TestGetStats(t *testing.T) {
	pl := NewPostLimiter(2*time.Second, 5)
	pl.RecordPost()
	pl.RecordPost()
	pl.ResetCycle()
	pl.RecordPost()

	stats := pl.GetStats()
	if stats["posted_this_cycle"] != 1 {
		t.Errorf("posted_this_cycle = %v, want 1", stats["posted_this_cycle"])
	}
	if stats["total_posted"] != int64(3) {
		t.Errorf("total_posted = %v, want 3", stats["total_posted"])
	}
	if stats["max_per_cycle"] != 5 {
		t.Errorf("max_per_cycle = %v, want 5", stats["max_per_cycle"])
	}
	if stats["min_delay_ms"] != int64(2000) {
		t.Errorf("min_delay_ms = %v, want 2000", stats["min_delay_ms"])
	}
}

func TestWaitNoDelayNeeded(t *testing.T) {
	pl := NewPostLimiter(10*time.Millisecond, 0)

	// No previous post, Wait must return immediately.
	start := time.Now()
	if err := pl.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if time.Since(start) > 5*time.Millisecond {
		t.Error("Wait slept although no post was recorded")
	}
}

func TestWaitCancelled(t *testing.T) {
	pl := NewPostLimiter(time.Minute, 0)
	pl.RecordPost()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pl.Wait(ctx); err == nil {
		t.Error("expected context error")
	}
}
