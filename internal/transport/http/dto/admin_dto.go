package dto

type DashboardResponse struct {
	TotalStudents     int64                    `json:"total_students"`
	ActiveStudents    int64                    `json:"active_students"`
	TotalResources    int64                    `json:"total_resources"`
	AvgCompletionRate float64                  `json:"avg_completion_rate"`
	RecentSignups     int64                    `json:"recent_signups"`
	RecentActivities  []RecentActivityResponse `json:"recent_activities"`
}

type RecentActivityResponse struct {
	StudentName  string `json:"student_name"`
	Category     string `json:"category"`
	ResourceName string `json:"resource_name"`
	CompletedAt  string `json:"completed_at"`
}

type AdminUserResponse struct {
	UserResponse
	ResourcesAssigned  int     `json:"resources_assigned"`
	ResourcesCompleted int     `json:"resources_completed"`
	AvgCompletion      float64 `json:"avg_completion"`
}

type AdminUserPageResponse struct {
	Users      []AdminUserResponse `json:"users"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	TotalPages int64               `json:"total_pages"`
}

type UserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

type ResourceResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	FileSize      string `json:"file_size"`
	Duration      string `json:"duration"`
	Storage       string `json:"storage"`
	FileURL       string `json:"file_url"`
	ThumbnailURL  string `json:"thumbnail_url"`
	DownloadCount int64  `json:"download_count"`
	IsActive      bool   `json:"is_active"`
	CreatedByName string `json:"created_by_name,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type ResourceUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type AssignResourceRequest struct {
	UserID     int64  `json:"user_id"`
	ResourceID int64  `json:"resource_id"`
	Category   string `json:"category"`
}

type MarkCategoryCompleteRequest struct {
	UserID   int64  `json:"user_id"`
	Category string `json:"category"`
}

type ProgressDetailResponse struct {
	ProgressResponse
	ResourceName    string `json:"resource_name"`
	ResourceType    string `json:"resource_type"`
	AssignedByName  string `json:"assigned_by_name"`
	CompletedByName string `json:"completed_by_name,omitempty"`
	AssignedAt      string `json:"assigned_at"`
}
