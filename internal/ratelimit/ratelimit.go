// Package ratelimit paces channel posts so a burst of fresh articles does
// not flood the channel or trip platform limits.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/lokkai/ground-news-discord-bot/internal/logger"
)

// PostLimiter enforces a minimum delay between posts and an optional
// per-cycle post budget.
type PostLimiter struct {
	mu              sync.Mutex
	minDelay        time.Duration
	maxPerCycle     int // 0 means unlimited
	postedThisCycle int
	lastPost        time.Time
	totalPosted     int64
}

func NewPostLimiter(minDelay time.Duration, maxPerCycle int) *PostLimiter {
	return &PostLimiter{
		minDelay:    minDelay,
		maxPerCycle: maxPerCycle,
	}
}

// Allow reports whether the current cycle still has post budget left.
func (pl *PostLimiter) Allow() bool {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.maxPerCycle > 0 && pl.postedThisCycle >= pl.maxPerCycle {
		logger.Warn("post budget for this cycle exhausted", "posted", pl.postedThisCycle, "max", pl.maxPerCycle)
		return false
	}
	return true
}

// Wait blocks until the minimum delay since the previous post has elapsed.
func (pl *PostLimiter) Wait(ctx context.Context) error {
	pl.mu.Lock()
	remaining := pl.minDelay - time.Since(pl.lastPost)
	pl.mu.Unlock()

	if remaining <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(remaining):
		return nil
	}
}

// RecordPost marks a successful post against the cycle budget.
func (pl *PostLimiter) RecordPost() {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.postedThisCycle++
	pl.totalPosted++
	pl.lastPost = time.Now()
}

// ResetCycle clears the per-cycle counter at the start of each poll cycle.
func (pl *PostLimiter) ResetCycle() {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.postedThisCycle = 0
}

// GetStats returns current limiter statistics.
func (pl *PostLimiter) GetStats() map[string]interface{} {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	return map[string]interface{}{
		"posted_this_cycle": pl.postedThisCycle,
		"max_per_cycle":     pl.maxPerCycle,
		"total_posted":      pl.totalPosted,
		"min_delay_ms":      pl.minDelay.Milliseconds(),
	}
}
