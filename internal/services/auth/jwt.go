package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/coachpoint/backend/internal/domain/enums"
)

// JWTManager mints and verifies the stateless session tokens. Tokens carry
// sub/role/iat/exp only; there is no server-side record and no way to
// revoke one before exp. Verification is strict wall-clock: no expiry
// leeway is configured.
type JWTManager struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenClaims struct {
	UserID    int64
	Role      enums.Role
	ExpiresAt time.Time
}

// NewJWTManager fails on an empty secret or unknown algorithm so that a
// misconfigured process aborts at boot rather than at the first login.
func NewJWTManager(secret, algorithm string, ttl time.Duration) (*JWTManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	method, err := signingMethod(algorithm)
	if err != nil {
		return nil, err
	}

	if ttl <= 0 {
		ttl = 86400 * time.Second
	}

	return &JWTManager{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func signingMethod(algorithm string) (*jwt.SigningMethodHMAC, error) {
	switch strings.ToUpper(strings.TrimSpace(algorithm)) {
	case "", jwt.SigningMethodHS256.Name:
		return jwt.SigningMethodHS256, nil
	case jwt.SigningMethodHS384.Name:
		return jwt.SigningMethodHS384, nil
	case jwt.SigningMethodHS512.Name:
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm %q", algorithm)
	}
}

func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

func (m *JWTManager) Issue(userID int64, role enums.Role) (string, time.Time, error) {
	if userID <= 0 {
		return "", time.Time{}, fmt.Errorf("invalid token subject")
	}

	// exp is a whole-second claim; truncate so the returned expiry equals
	// what the token actually carries.
	now := m.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(m.ttl)
	claims := tokenClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(m.method, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature and expiry only. The subject is not looked up:
// a token outlives deactivation of its user until exp. Signing method is
// pinned to the configured one, so a token minted with a different
// algorithm fails as invalid even under the same secret.
func (m *JWTManager) Verify(raw string) (TokenClaims, error) {
	if strings.TrimSpace(raw) == "" {
		return TokenClaims{}, ErrTokenInvalid
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{m.method.Name}), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, ErrTokenExpired
		}
		return TokenClaims{}, ErrTokenInvalid
	}
	if token == nil || !token.Valid {
		return TokenClaims{}, ErrTokenInvalid
	}

	userID, parseErr := strconv.ParseInt(claims.Subject, 10, 64)
	if parseErr != nil || userID <= 0 {
		return TokenClaims{}, ErrTokenInvalid
	}
	role, ok := enums.ParseRole(claims.Role)
	if !ok {
		return TokenClaims{}, ErrTokenInvalid
	}
	if claims.ExpiresAt == nil {
		return TokenClaims{}, ErrTokenInvalid
	}

	return TokenClaims{
		UserID:    userID,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
