// Package ratelimit implements advisory fixed-window throttling of
// write-like device actions. It is not a security boundary: when the
// backing store fails the limiter fails open.
package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dongkyukim1/confession-backend/internal/cache"
)

// Counter is the persisted per-key window state.
type Counter struct {
	Count   int       `json:"count"`
	ResetAt time.Time `json:"reset_at"`
}

// Result reports the outcome of a check-and-increment.
type Result struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// Limiter applies one fixed window per key: the window opens on the
// first attempt and accepts up to max attempts until its reset time,
// after which the next attempt opens a fresh window.
type Limiter struct {
	store cache.KV
	now   func() time.Time
}

func New(store cache.KV) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// NewWithClock allows tests to control time.
func NewWithClock(store cache.KV, now func() time.Time) *Limiter {
	return &Limiter{store: store, now: now}
}

// Allow performs a single read-modify-write for key. A single device
// is the only writer of its own keys, so no cross-process atomicity is
// needed.
func (l *Limiter) Allow(ctx context.Context, key string, max int, window time.Duration) Result {
	now := l.now()

	counter, err := l.load(ctx, key)
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		slog.Warn("rate limit store read failed, failing open", "key", key, "error", err)
		return Result{Allowed: true, Remaining: max - 1, ResetAt: now.Add(window)}
	}

	if counter == nil || now.After(counter.ResetAt) {
		counter = &Counter{Count: 0, ResetAt: now.Add(window)}
	}

	if counter.Count >= max {
		return Result{Allowed: false, Remaining: 0, ResetAt: counter.ResetAt}
	}

	counter.Count++
	if err := l.save(ctx, key, counter); err != nil {
		slog.Warn("rate limit store write failed, failing open", "key", key, "error", err)
	}

	return Result{
		Allowed:   true,
		Remaining: max - counter.Count,
		ResetAt:   counter.ResetAt,
	}
}

func (l *Limiter) load(ctx context.Context, key string) (*Counter, error) {
	raw, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var c Counter
	if err := json.Unmarshal(raw, &c); err != nil {
		// A corrupt counter is discarded, not propagated.
		return nil, cache.ErrNotFound
	}
	return &c, nil
}

func (l *Limiter) save(ctx context.Context, key string, c *Counter) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	ttl := c.ResetAt.Sub(l.now())
	if ttl < 0 {
		ttl = 0
	}
	return l.store.Set(ctx, key, raw, ttl)
}
