package dto

type AssignedResourceResponse struct {
	AssignmentID         int64   `json:"assignment_id"`
	ResourceID           int64   `json:"resource_id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Type                 string  `json:"type"`
	FileSize             string  `json:"file_size"`
	Duration             string  `json:"duration"`
	ThumbnailURL         string  `json:"thumbnail_url"`
	Category             string  `json:"category"`
	CompletionPercentage float64 `json:"completion_percentage"`
	TimeSpentMinutes     int     `json:"time_spent_minutes"`
	IsCompleted          bool    `json:"is_completed"`
	AssignedAt           string  `json:"assigned_at"`
	LastAccessedAt       string  `json:"last_accessed_at,omitempty"`
	CompletedAt          string  `json:"completed_at,omitempty"`
}

type ResourceViewResponse struct {
	ResourceID int64  `json:"resource_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	ViewURL    string `json:"view_url"`
}

type ProgressUpdateRequest struct {
	CompletionPercentage *float64 `json:"completion_percentage"`
	TimeSpentMinutes     *int     `json:"time_spent_minutes"`
}

type ProgressResponse struct {
	AssignmentID         int64   `json:"assignment_id"`
	ResourceID           int64   `json:"resource_id"`
	Category             string  `json:"category"`
	CompletionPercentage float64 `json:"completion_percentage"`
	TimeSpentMinutes     int     `json:"time_spent_minutes"`
	IsCompleted          bool    `json:"is_completed"`
	CompletedAt          string  `json:"completed_at,omitempty"`
}

type CategorySummaryResponse struct {
	Category           string  `json:"category"`
	TotalResources     int     `json:"total_resources"`
	CompletedResources int     `json:"completed_resources"`
	AvgCompletion      float64 `json:"avg_completion"`
	TotalTimeSpent     int     `json:"total_time_spent"`
}

type ProfileUpdateRequest struct {
	FullName       *string `json:"full_name"`
	WhatsappNumber *string `json:"whatsapp_number"`
	Location       *string `json:"location"`
	TargetScore    *string `json:"target_score"`
}
