package model

import (
	"time"

	"github.com/coachpoint/backend/internal/domain/enums"
)

type User struct {
	ID             int64
	Email          string
	PasswordHash   string
	FullName       string
	WhatsappNumber string
	Location       string
	TargetScore    string
	Role           enums.Role
	IsActive       bool
	CreatedAt      time.Time
}

// UserWithStats decorates a user row with aggregate progress numbers for
// the admin user list.
type UserWithStats struct {
	User
	ResourcesAssigned  int
	ResourcesCompleted int
	AvgCompletion      float64
}

type ProfileUpdate struct {
	FullName       *string
	WhatsappNumber *string
	Location       *string
	TargetScore    *string
}
