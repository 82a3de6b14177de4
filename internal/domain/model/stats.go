package model

type DashboardStats struct {
	TotalStudents     int64
	ActiveStudents    int64
	TotalResources    int64
	AvgCompletionRate float64
	RecentSignups     int64
	RecentActivities  []RecentCompletion
}
