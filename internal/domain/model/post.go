package model

import (
	"time"

	"github.com/coachpoint/backend/internal/domain/enums"
)

type Post struct {
	ID              int64
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	Category        string
	Tags            []string
	AuthorID        int64
	AuthorName      string
	Status          enums.PostStatus
	MetaTitle       string
	MetaDescription string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type PostUpdate struct {
	Title           *string
	Slug            *string
	Content         *string
	Excerpt         *string
	Category        *string
	Tags            *[]string
	Status          *enums.PostStatus
	MetaTitle       *string
	MetaDescription *string
}
