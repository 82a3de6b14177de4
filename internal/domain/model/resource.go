package model

import "time"

// StorageKind tells where a resource file physically lives.
const (
	StorageS3    = "s3"
	StorageLocal = "local"
)

type Resource struct {
	ID            int64
	Name          string
	Description   string
	Type          string
	FileSize      string
	Duration      string
	Storage       string
	FileID        string
	FileURL       string
	ThumbnailURL  string
	DownloadCount int64
	IsActive      bool
	CreatedBy     int64
	CreatedByName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ResourceUpdate struct {
	Name        *string
	Description *string
	IsActive    *bool
}
