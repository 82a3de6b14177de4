package rate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// CounterStore is the injected counting substrate: an atomic
// increment-or-create-with-TTL per key. Implementations must keep
// same-key increments race-free (redis INCR, or a lock in process).
type CounterStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter applies a fixed-window counter per client key: the counter
// resets at discrete window boundaries, not a rolling average.
type Limiter struct {
	store  CounterStore
	limit  int
	window time.Duration
}

func NewLimiter(store CounterStore, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = 120
	}
	if window <= 0 {
		window = 60 * time.Second
	}

	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

// Allow counts the request against the client's current window. When the
// window is exhausted it returns allowed=false and the whole seconds left
// until the window ends. A store error is returned as-is; the caller
// decides the availability policy (the HTTP gate fails open).
func (l *Limiter) Allow(ctx context.Context, clientKey string) (int64, bool, error) {
	if clientKey == "" {
		return 0, false, fmt.Errorf("client key is required")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, counterKey(clientKey), l.window)
	if err != nil {
		return 0, false, err
	}

	if count > int64(l.limit) {
		return ceilSeconds(ttl), false, nil
	}

	return 0, true, nil
}

// ClientKey hashes a client address into a fixed-size counter key.
func ClientKey(addr string) string {
	sum := sha256.Sum256([]byte(addr))
	return hex.EncodeToString(sum[:8])
}

func counterKey(clientKey string) string {
	return "rate:req:" + clientKey
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
