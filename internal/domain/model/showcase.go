package model

import "time"

// Testimonial, Review and ScoreSheet are the public marketing surfaces:
// admin-curated success stories shown on the site.

type Testimonial struct {
	ID              int64
	StudentName     string
	StudentPhotoURL string
	ScoreBefore     string
	ScoreAfter      string
	ScoreBreakdown  string
	Text            string
	VideoURL        string
	Location        string
	ExamDate        *time.Time
	IsFeatured      bool
	Status          string
	DisplayOrder    int
	CreatedAt       time.Time
}

// TestimonialUpdate carries the admin-editable fields; nil leaves the
// column as is.
type TestimonialUpdate struct {
	StudentName     *string
	StudentPhotoURL *string
	ScoreBefore     *string
	ScoreAfter      *string
	ScoreBreakdown  *string
	Text            *string
	VideoURL        *string
	Location        *string
	ExamDate        *time.Time
	IsFeatured      *bool
	Status          *string
	DisplayOrder    *int
}

type Review struct {
	ID               int64
	ReviewerName     string
	ReviewerPhotoURL string
	Text             string
	Rating           int
	GoogleReviewURL  string
	ReviewDate       *time.Time
	IsFeatured       bool
	CreatedAt        time.Time
}

type ReviewUpdate struct {
	ReviewerName     *string
	ReviewerPhotoURL *string
	Text             *string
	Rating           *int
	GoogleReviewURL  *string
	ReviewDate       *time.Time
	IsFeatured       *bool
}

type ScoreSheet struct {
	ID             int64
	StudentName    string
	ExamType       string
	OverallScore   float64
	ListeningScore float64
	ReadingScore   float64
	SpeakingScore  float64
	WritingScore   float64
	ImageURL       string
	ExamDate       *time.Time
	Location       string
	IsFeatured     bool
	CreatedAt      time.Time
}

type ScoreSheetUpdate struct {
	StudentName    *string
	ExamType       *string
	OverallScore   *float64
	ListeningScore *float64
	ReadingScore   *float64
	SpeakingScore  *float64
	WritingScore   *float64
	ImageURL       *string
	ExamDate       *time.Time
	Location       *string
	IsFeatured     *bool
}
