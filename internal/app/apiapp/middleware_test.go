package apiapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coachpoint/backend/internal/domain/enums"
	redrepo "github.com/coachpoint/backend/internal/repo/redis"
	authsvc "github.com/coachpoint/backend/internal/services/auth"
	ratesvc "github.com/coachpoint/backend/internal/services/rate"
)

func newAuthService(t *testing.T, ttl time.Duration) *authsvc.Service {
	t.Helper()
	m, err := authsvc.NewJWTManager("middleware-secret", "HS256", ttl)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}
	return authsvc.NewService(m, nil)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func assertBody(t *testing.T, got, want string) {
	t.Helper()
	if strings.TrimSpace(got) != want {
		t.Fatalf("body mismatch:\n got %s\nwant %s", strings.TrimSpace(got), want)
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	mw := AuthMiddleware(newAuthService(t, time.Hour), zap.NewNop())

	for _, header := range []string{"", "Bearer", "Bearer ", "Token abc", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/student/resources", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()

		mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatalf("handler must not run without a bearer token (header %q)", header)
		})).ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: got status %d want 401", header, rr.Code)
		}
		assertBody(t, rr.Body.String(), `{"success":false,"error":"Missing or invalid Authorization header"}`)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	mw := AuthMiddleware(newAuthService(t, time.Hour), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/student/resources", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d want 401", rr.Code)
	}
	assertBody(t, rr.Body.String(), `{"success":false,"error":"Invalid or expired token"}`)
}

func TestAuthMiddlewareExpiredTokenSameBody(t *testing.T) {
	// Expired and malformed tokens are indistinguishable to the caller.
	issuer, err := authsvc.NewJWTManager("middleware-secret", "HS256", time.Second)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}
	token, _, err := issuer.Issue(5, enums.RoleStudent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)

	mw := AuthMiddleware(authsvc.NewService(issuer, nil), zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/student/resources", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with an expired token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d want 401", rr.Code)
	}
	assertBody(t, rr.Body.String(), `{"success":false,"error":"Invalid or expired token"}`)
}

func TestAuthMiddlewareAttachesIdentity(t *testing.T) {
	svc := newAuthService(t, time.Hour)
	issuer, err := authsvc.NewJWTManager("middleware-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}
	token, _, err := issuer.Issue(42, enums.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	AuthMiddleware(svc, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authsvc.IdentityFromContext(r.Context())
		if !ok {
			t.Fatal("identity missing in context")
		}
		if identity.UserID != 42 || identity.Role != enums.RoleAdmin {
			t.Fatalf("identity mismatch: %+v", identity)
		}
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("got status %d want 204", rr.Code)
	}
}

func TestAuthMiddlewareToleratesHeaderWhitespace(t *testing.T) {
	svc := newAuthService(t, time.Hour)
	issuer, err := authsvc.NewJWTManager("middleware-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}
	token, _, err := issuer.Issue(42, enums.RoleStudent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, header := range []string{
		"Bearer " + token,
		"bearer " + token,
		"Bearer\t" + token,
		"Bearer   " + token,
		"  Bearer " + token + "  ",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/student/resources", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()

		AuthMiddleware(svc, zap.NewNop())(okHandler()).ServeHTTP(rr, req)

		if rr.Code != http.StatusNoContent {
			t.Fatalf("header %q: got status %d want 204", header, rr.Code)
		}
	}
}

func TestRequireRoleForbidden(t *testing.T) {
	mw := RequireRole(enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: 7,
		Role:   enums.RoleStudent,
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run for a student on an admin route")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("got status %d want 403", rr.Code)
	}
	assertBody(t, rr.Body.String(), `{"error":"Admin access required"}`)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	mw := RequireRole(enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: 1,
		Role:   enums.RoleAdmin,
	}))
	rr := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("got status %d want 204", rr.Code)
	}
}

func TestRequireRoleWithoutIdentityIsUnauthorized(t *testing.T) {
	mw := RequireRole(enums.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without an identity")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d want 401", rr.Code)
	}
	assertBody(t, rr.Body.String(), `{"success":false,"error":"Missing or invalid Authorization header"}`)
}

func TestRateLimitMiddlewareBlocksAndReports(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	limiter := ratesvc.NewLimiter(redrepo.NewRateRepo(client), 3, 60*time.Second)
	mw := RateLimitMiddleware(limiter, zap.NewNop())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/public/posts", nil)
		req.RemoteAddr = "203.0.113.1:4567"
		rr := httptest.NewRecorder()
		mw(okHandler()).ServeHTTP(rr, req)
		if rr.Code != http.StatusNoContent {
			t.Fatalf("request #%d: got status %d want 204", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/posts", nil)
	req.RemoteAddr = "203.0.113.1:4567"
	rr := httptest.NewRecorder()
	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run over the limit")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d want 429", rr.Code)
	}
	assertBody(t, rr.Body.String(), `{"success":false,"error":"Rate limit exceeded","retry_in_seconds":60}`)

	// A different client address still gets through.
	req = httptest.NewRequest(http.MethodGet, "/api/public/posts", nil)
	req.RemoteAddr = "203.0.113.2:4567"
	rr = httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("other client: got status %d want 204", rr.Code)
	}
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	limiter := ratesvc.NewLimiter(redrepo.NewRateRepo(client), 1, 60*time.Second)
	mw := RateLimitMiddleware(limiter, zap.NewNop())

	mr.Close()
	_ = client.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/public/posts", nil)
	req.RemoteAddr = "203.0.113.3:4567"
	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("store outage must not block requests: got status %d", rr.Code)
	}
}

func TestRateLimitMiddlewareConcurrentExactAdmissions(t *testing.T) {
	const limit = 20
	limiter := ratesvc.NewLimiter(ratesvc.NewMemoryStore(), limit, time.Minute)
	mw := RateLimitMiddleware(limiter, zap.NewNop())
	handler := mw(okHandler())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	for i := 0; i < 3*limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/public/posts", nil)
			req.RemoteAddr = "198.51.100.1:1234"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code == http.StatusNoContent {
				mu.Lock()
				admitted++
				mu.Unlock()
			} else if rr.Code != http.StatusTooManyRequests {
				t.Errorf("unexpected status %d", rr.Code)
			}
		}()
	}
	wg.Wait()

	if admitted != limit {
		t.Fatalf("exactly %d requests must be admitted, got %d", limit, admitted)
	}
}
