package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
)

type UserStore interface {
	Create(ctx context.Context, user model.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
}

type Service struct {
	users UserStore
	jwt   *JWTManager
}

func NewService(jwtManager *JWTManager, users UserStore) *Service {
	return &Service{
		users: users,
		jwt:   jwtManager,
	}
}

// Register creates a student account and issues its first token.
// Registration never yields an admin: the role is fixed server-side.
func (s *Service) Register(ctx context.Context, reg Registration) (AuthResult, error) {
	if s.users == nil {
		return AuthResult{}, fmt.Errorf("user store is nil")
	}

	email := strings.ToLower(strings.TrimSpace(reg.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return AuthResult{}, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.users.Create(ctx, model.User{
		Email:          email,
		PasswordHash:   string(hash),
		FullName:       strings.TrimSpace(reg.FullName),
		WhatsappNumber: strings.TrimSpace(reg.WhatsappNumber),
		Role:           enums.RoleStudent,
		IsActive:       true,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("load created user: %w", err)
	}

	return s.issueFor(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if s.users == nil {
		return AuthResult{}, fmt.Errorf("user store is nil")
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("find user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issueFor(user)
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (model.User, error) {
	if s.users == nil {
		return model.User{}, fmt.Errorf("user store is nil")
	}
	if userID <= 0 {
		return model.User{}, ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}

	return user, nil
}

// VerifyToken is the middleware entry point: signature and expiry only,
// no store lookup.
func (s *Service) VerifyToken(token string) (TokenClaims, error) {
	return s.jwt.Verify(token)
}

func (s *Service) TokenTTL() int64 {
	return int64(s.jwt.TTL().Seconds())
}

func (s *Service) issueFor(user model.User) (AuthResult, error) {
	token, expiresAt, err := s.jwt.Issue(user.ID, user.Role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
