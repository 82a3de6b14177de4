package model

import (
	"time"

	"github.com/coachpoint/backend/internal/domain/enums"
)

// Assignment links a student to a resource inside one study category.
type Assignment struct {
	ID                   int64
	UserID               int64
	ResourceID           int64
	Category             enums.ResourceCategory
	AssignedByAdminID    int64
	CompletionPercentage float64
	TimeSpentMinutes     int
	IsCompleted          bool
	CompletedByAdminID   *int64
	AssignedAt           time.Time
	LastAccessedAt       *time.Time
	CompletedAt          *time.Time
}

// AssignedResource is an assignment joined with its resource row, the
// shape the student dashboard consumes.
type AssignedResource struct {
	Assignment
	ResourceName string
	Description  string
	ResourceType string
	FileSize     string
	Duration     string
	Storage      string
	FileID       string
	FileURL      string
	ThumbnailURL string
}

type CategorySummary struct {
	Category           enums.ResourceCategory
	TotalResources     int
	CompletedResources int
	AvgCompletion      float64
	TotalTimeSpent     int
}

// ProgressDetail is the admin view of one assignment: who assigned it and
// who signed off on completion.
type ProgressDetail struct {
	Assignment
	ResourceName    string
	ResourceType    string
	AssignedByName  string
	CompletedByName string
}

type ProgressUpdate struct {
	CompletionPercentage *float64
	TimeSpentMinutes     *int
}

// RecentCompletion feeds the admin dashboard activity feed.
type RecentCompletion struct {
	StudentName  string
	Category     enums.ResourceCategory
	ResourceName string
	CompletedAt  time.Time
}
