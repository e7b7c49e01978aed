package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dongkyukim1/confession-backend/internal/cache"
)

func TestAllowFreshKey(t *testing.T) {
	l := New(cache.NewMemory())

	res := l.Allow(context.Background(), "write:dev1", 5, time.Minute)

	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
	assert.False(t, res.ResetAt.IsZero())
}

func TestDenyOverMax(t *testing.T) {
	l := New(cache.NewMemory())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := l.Allow(ctx, "write:dev1", 3, time.Minute)
		assert.True(t, res.Allowed, "attempt %d inside the window", i+1)
	}

	res := l.Allow(ctx, "write:dev1", 3, time.Minute)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.False(t, res.ResetAt.IsZero())
}

func TestWindowReopens(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	l := NewWithClock(cache.NewMemory(), clock)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		l.Allow(ctx, "k", 2, time.Minute)
	}
	assert.False(t, l.Allow(ctx, "k", 2, time.Minute).Allowed)

	// Past the reset time the next attempt opens a fresh window.
	now = now.Add(61 * time.Second)
	res := l.Allow(ctx, "k", 2, time.Minute)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(cache.NewMemory())
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "write:dev1", 1, time.Minute).Allowed)
	assert.False(t, l.Allow(ctx, "write:dev1", 1, time.Minute).Allowed)
	assert.True(t, l.Allow(ctx, "write:dev2", 1, time.Minute).Allowed)
	assert.True(t, l.Allow(ctx, "read:dev1", 1, time.Minute).Allowed)
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("store down")
}
func (failingKV) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}
func (failingKV) Delete(context.Context, string) error {
	return errors.New("store down")
}

func TestFailsOpenOnStoreErrors(t *testing.T) {
	l := New(failingKV{})

	for i := 0; i < 10; i++ {
		res := l.Allow(context.Background(), "k", 1, time.Minute)
		assert.True(t, res.Allowed)
	}
}

func TestCorruptCounterDiscarded(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()
	_ = store.Set(ctx, "k", []byte("not json"), 0)

	l := New(store)
	res := l.Allow(ctx, "k", 2, time.Minute)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}
