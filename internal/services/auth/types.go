package auth

import (
	"errors"
	"time"

	"github.com/coachpoint/backend/internal/domain/model"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	// ErrTokenInvalid covers malformed structure, bad signature and
	// algorithm mismatch; ErrTokenExpired a valid signature past exp.
	// Callers collapse both into the same 401, the split exists for logs.
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("expired token")
)

type AuthResult struct {
	User      model.User
	Token     string
	ExpiresAt time.Time
}

type Registration struct {
	Email          string
	Password       string
	FullName       string
	WhatsappNumber string
}
