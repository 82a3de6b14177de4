package apiapp

import (
	"net"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/coachpoint/backend/internal/domain/enums"
	authsvc "github.com/coachpoint/backend/internal/services/auth"
	ratesvc "github.com/coachpoint/backend/internal/services/rate"
	"github.com/coachpoint/backend/internal/transport/http/respond"
)

func ApplyMiddlewares(r chiRouter, log *zap.Logger) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(requestLogger(log))
}

// RateLimitMiddleware counts requests per client address inside a fixed
// window. When the counter store is unreachable the request goes through:
// an outage must not take the API down with it.
func RateLimitMiddleware(limiter *ratesvc.Limiter, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter, allowed, err := limiter.Allow(r.Context(), ratesvc.ClientKey(clientAddr(r)))
			if err != nil {
				if log != nil {
					log.Warn("rate counter store unavailable, letting request through", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				respond.RateLimited(w, retryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func AuthMiddleware(authService *authsvc.Service, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authService == nil {
				respond.Error(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			token, ok := extractBearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			claims, err := authService.VerifyToken(token)
			if err != nil {
				if log != nil {
					log.Debug("token verification failed", zap.Error(err))
				}
				respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := authsvc.WithIdentity(r.Context(), authsvc.Identity{
				UserID: claims.UserID,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole runs behind AuthMiddleware. A request that somehow reaches it
// without an identity gets 401, not 403: the caller never authenticated.
func RequireRole(roles ...enums.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := authsvc.IdentityFromContext(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			respond.Write(w, http.StatusForbidden, struct {
				Error string `json:"error"`
			}{Error: roleDeniedMessage(roles)})
		})
	}
}

func roleDeniedMessage(roles []enums.Role) string {
	if len(roles) == 1 && roles[0] == enums.RoleAdmin {
		return "Admin access required"
	}
	return "Access denied"
}

func extractBearerToken(value string) (string, bool) {
	// Tokens carry no whitespace, so any run of spaces or tabs after the
	// scheme is a separator.
	fields := strings.Fields(value)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	return fields[1], true
}

// clientAddr relies on the RealIP middleware having already rewritten
// RemoteAddr when the request came through a proxy.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if log != nil {
				log.Info("http_request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Duration("duration", time.Since(start)),
				)
			}
		})
	}
}

type chiRouter interface {
	Use(middlewares ...func(http.Handler) http.Handler)
}
