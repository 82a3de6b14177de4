package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
)

type fakeUserStore struct {
	nextID int64
	byID   map[int64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[int64]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user model.User) (int64, error) {
	for _, u := range s.byID {
		if u.Email == user.Email {
			return 0, ErrEmailTaken
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.byID[user.ID] = user
	return user.ID, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserStore) {
	t.Helper()
	m, err := NewJWTManager("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}
	store := newFakeUserStore()
	return NewService(m, store), store
}

func TestRegisterIssuesStudentToken(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Register(context.Background(), Registration{
		Email:    "Student@Example.COM",
		Password: "password123",
		FullName: "A Student",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Email != "student@example.com" {
		t.Fatalf("email not normalized: %q", res.User.Email)
	}
	if res.User.Role != enums.RoleStudent {
		t.Fatalf("role must be student, got %q", res.User.Role)
	}
	if res.User.PasswordHash == "password123" {
		t.Fatal("password stored in plain text")
	}

	claims, err := svc.VerifyToken(res.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != res.User.ID || claims.Role != enums.RoleStudent {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg := Registration{Email: "dup@example.com", Password: "password123"}
	if _, err := svc.Register(ctx, reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, reg); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, Registration{Email: "user@example.com", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(ctx, "USER@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("empty token")
	}

	if _, err := svc.Login(ctx, "user@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, Registration{Email: "me@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.CurrentUser(ctx, res.User.ID)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.Email != "me@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.CurrentUser(ctx, 9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
