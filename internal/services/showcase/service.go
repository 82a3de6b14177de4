package showcase

import (
	"context"
	"errors"
	"strings"

	"github.com/coachpoint/backend/internal/domain/model"
)

var (
	ErrInvalidInput = errors.New("invalid showcase input")
	ErrNotFound     = errors.New("showcase item not found")
)

type Store interface {
	CreateTestimonial(ctx context.Context, t model.Testimonial) (int64, error)
	ApprovedTestimonials(ctx context.Context, limit int) ([]model.Testimonial, error)
	AllTestimonials(ctx context.Context, limit int) ([]model.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id int64, u model.TestimonialUpdate) error
	DeleteTestimonial(ctx context.Context, id int64) error

	CreateReview(ctx context.Context, rv model.Review) (int64, error)
	ListReviews(ctx context.Context, minRating, limit int) ([]model.Review, error)
	AllReviews(ctx context.Context, limit int) ([]model.Review, error)
	UpdateReview(ctx context.Context, id int64, u model.ReviewUpdate) error
	DeleteReview(ctx context.Context, id int64) error

	CreateScoreSheet(ctx context.Context, s model.ScoreSheet) (int64, error)
	ListScoreSheets(ctx context.Context, examType string, featuredOnly bool, limit int) ([]model.ScoreSheet, error)
	AllScoreSheets(ctx context.Context, limit int) ([]model.ScoreSheet, error)
	UpdateScoreSheet(ctx context.Context, id int64, u model.ScoreSheetUpdate) error
	DeleteScoreSheet(ctx context.Context, id int64) error
}

const defaultListLimit = 50

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) AddTestimonial(ctx context.Context, t model.Testimonial) (int64, error) {
	t.StudentName = strings.TrimSpace(t.StudentName)
	if t.StudentName == "" || strings.TrimSpace(t.Text) == "" {
		return 0, ErrInvalidInput
	}
	if t.Status == "" {
		t.Status = "approved"
	}
	return s.store.CreateTestimonial(ctx, t)
}

func (s *Service) Testimonials(ctx context.Context, limit int) ([]model.Testimonial, error) {
	return s.store.ApprovedTestimonials(ctx, clampLimit(limit))
}

// AllTestimonials is the admin view: pending and rejected entries included.
func (s *Service) AllTestimonials(ctx context.Context, limit int) ([]model.Testimonial, error) {
	return s.store.AllTestimonials(ctx, clampLimit(limit))
}

func (s *Service) UpdateTestimonial(ctx context.Context, id int64, u model.TestimonialUpdate) error {
	if u.StudentName != nil {
		name := strings.TrimSpace(*u.StudentName)
		if name == "" {
			return ErrInvalidInput
		}
		u.StudentName = &name
	}
	if u.Text != nil && strings.TrimSpace(*u.Text) == "" {
		return ErrInvalidInput
	}
	if u.Status != nil && strings.TrimSpace(*u.Status) == "" {
		return ErrInvalidInput
	}
	return s.store.UpdateTestimonial(ctx, id, u)
}

func (s *Service) RemoveTestimonial(ctx context.Context, id int64) error {
	return s.store.DeleteTestimonial(ctx, id)
}

func (s *Service) AddReview(ctx context.Context, rv model.Review) (int64, error) {
	rv.ReviewerName = strings.TrimSpace(rv.ReviewerName)
	if rv.ReviewerName == "" || rv.Rating < 1 || rv.Rating > 5 {
		return 0, ErrInvalidInput
	}
	return s.store.CreateReview(ctx, rv)
}

func (s *Service) Reviews(ctx context.Context, minRating, limit int) ([]model.Review, error) {
	if minRating < 1 {
		minRating = 1
	}
	if minRating > 5 {
		minRating = 5
	}
	return s.store.ListReviews(ctx, minRating, clampLimit(limit))
}

func (s *Service) AllReviews(ctx context.Context, limit int) ([]model.Review, error) {
	return s.store.AllReviews(ctx, clampLimit(limit))
}

func (s *Service) UpdateReview(ctx context.Context, id int64, u model.ReviewUpdate) error {
	if u.ReviewerName != nil {
		name := strings.TrimSpace(*u.ReviewerName)
		if name == "" {
			return ErrInvalidInput
		}
		u.ReviewerName = &name
	}
	if u.Rating != nil && (*u.Rating < 1 || *u.Rating > 5) {
		return ErrInvalidInput
	}
	return s.store.UpdateReview(ctx, id, u)
}

func (s *Service) RemoveReview(ctx context.Context, id int64) error {
	return s.store.DeleteReview(ctx, id)
}

func (s *Service) AddScoreSheet(ctx context.Context, sheet model.ScoreSheet) (int64, error) {
	sheet.StudentName = strings.TrimSpace(sheet.StudentName)
	if sheet.StudentName == "" || sheet.ExamType == "" {
		return 0, ErrInvalidInput
	}
	return s.store.CreateScoreSheet(ctx, sheet)
}

func (s *Service) ScoreSheets(ctx context.Context, examType string, featuredOnly bool, limit int) ([]model.ScoreSheet, error) {
	return s.store.ListScoreSheets(ctx, strings.TrimSpace(examType), featuredOnly, clampLimit(limit))
}

func (s *Service) AllScoreSheets(ctx context.Context, limit int) ([]model.ScoreSheet, error) {
	return s.store.AllScoreSheets(ctx, clampLimit(limit))
}

func (s *Service) UpdateScoreSheet(ctx context.Context, id int64, u model.ScoreSheetUpdate) error {
	if u.StudentName != nil {
		name := strings.TrimSpace(*u.StudentName)
		if name == "" {
			return ErrInvalidInput
		}
		u.StudentName = &name
	}
	if u.ExamType != nil && strings.TrimSpace(*u.ExamType) == "" {
		return ErrInvalidInput
	}
	return s.store.UpdateScoreSheet(ctx, id, u)
}

func (s *Service) RemoveScoreSheet(ctx context.Context, id int64) error {
	return s.store.DeleteScoreSheet(ctx, id)
}

func clampLimit(limit int) int {
	if limit < 1 || limit > defaultListLimit {
		return defaultListLimit
	}
	return limit
}
