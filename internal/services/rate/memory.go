package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the single-process CounterStore: a locked map of
// windowed counters. Lapsed windows are reset in place on the next
// increment, so the map stays bounded by the active client set.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]memoryCounter
	now      func() time.Time
}

type memoryCounter struct {
	count     int64
	windowEnd time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counters: make(map[string]memoryCounter),
		now:      time.Now,
	}
}

func (s *MemoryStore) IncrementWindow(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.counters[key]
	if !ok || !counter.windowEnd.After(now) {
		counter = memoryCounter{count: 1, windowEnd: now.Add(window)}
	} else {
		counter.count++
	}
	s.counters[key] = counter

	return counter.count, counter.windowEnd.Sub(now), nil
}
