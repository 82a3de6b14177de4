package rate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/coachpoint/backend/internal/repo/redis"
)

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	return mr, goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
}

func TestLimiterBlocksOverLimit(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client), 3, 60*time.Second)
	ctx := context.Background()
	key := ClientKey("203.0.113.7")

	for i := 0; i < 3; i++ {
		retryAfter, allowed, err := limiter.Allow(ctx, key)
		if err != nil {
			t.Fatalf("allow #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("unexpected result on allow #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
		}
	}

	retryAfter, allowed, err := limiter.Allow(ctx, key)
	if err != nil {
		t.Fatalf("allow #4: %v", err)
	}
	if allowed {
		t.Fatal("expected block on fourth request in window")
	}
	if retryAfter <= 0 || retryAfter > 60 {
		t.Fatalf("retry_after out of range: %d", retryAfter)
	}
}

func TestLimiterWindowReset(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client), 1, 60*time.Second)
	ctx := context.Background()
	key := ClientKey("203.0.113.8")

	if _, allowed, err := limiter.Allow(ctx, key); err != nil || !allowed {
		t.Fatalf("first request must pass: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, _ := limiter.Allow(ctx, key); allowed {
		t.Fatal("second request must be blocked")
	}

	mr.FastForward(61 * time.Second)

	if _, allowed, err := limiter.Allow(ctx, key); err != nil || !allowed {
		t.Fatalf("request after window must pass: allowed=%v err=%v", allowed, err)
	}
}

func TestLimiterIsolatesClients(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client), 1, 60*time.Second)
	ctx := context.Background()

	if _, allowed, _ := limiter.Allow(ctx, ClientKey("10.0.0.1")); !allowed {
		t.Fatal("first client must pass")
	}
	if _, allowed, _ := limiter.Allow(ctx, ClientKey("10.0.0.1")); allowed {
		t.Fatal("first client must be blocked on second request")
	}
	if _, allowed, _ := limiter.Allow(ctx, ClientKey("10.0.0.2")); !allowed {
		t.Fatal("second client must not share the first client's counter")
	}
}

func TestLimiterSurfacesStoreError(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	limiter := NewLimiter(redrepo.NewRateRepo(client), 3, 60*time.Second)

	mr.Close()
	_ = client.Close()

	if _, _, err := limiter.Allow(context.Background(), ClientKey("10.0.0.3")); err == nil {
		t.Fatal("expected error from closed store")
	}
}

func TestMemoryStoreFixedWindow(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	limiter := NewLimiter(store, 2, 30*time.Second)
	ctx := context.Background()
	key := ClientKey("192.0.2.1")

	for i := 0; i < 2; i++ {
		if _, allowed, err := limiter.Allow(ctx, key); err != nil || !allowed {
			t.Fatalf("allow #%d: allowed=%v err=%v", i+1, allowed, err)
		}
	}

	retryAfter, allowed, err := limiter.Allow(ctx, key)
	if err != nil {
		t.Fatalf("allow #3: %v", err)
	}
	if allowed {
		t.Fatal("expected block over memory-store limit")
	}
	if retryAfter != 30 {
		t.Fatalf("retry_after should be the full window, got %d", retryAfter)
	}

	now = now.Add(31 * time.Second)
	if _, allowed, err := limiter.Allow(ctx, key); err != nil || !allowed {
		t.Fatalf("request after lapsed window must pass: allowed=%v err=%v", allowed, err)
	}
}

func TestMemoryStoreConcurrentExactAdmissions(t *testing.T) {
	const limit = 50
	limiter := NewLimiter(NewMemoryStore(), limit, time.Minute)
	ctx := context.Background()
	key := ClientKey("198.51.100.9")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	for i := 0; i < 3*limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, allowed, err := limiter.Allow(ctx, key)
			if err != nil {
				t.Errorf("allow: %v", err)
				return
			}
			if allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != limit {
		t.Fatalf("exactly %d requests must be admitted, got %d", limit, admitted)
	}
}

func TestClientKeyStableAndDistinct(t *testing.T) {
	if ClientKey("1.2.3.4") != ClientKey("1.2.3.4") {
		t.Fatal("key must be deterministic")
	}
	if ClientKey("1.2.3.4") == ClientKey("1.2.3.5") {
		t.Fatal("distinct addresses must map to distinct keys")
	}
}
