package showcase

import (
	"context"
	"errors"
	"testing"

	"github.com/coachpoint/backend/internal/domain/model"
)

type fakeStore struct {
	testimonials map[int64]model.Testimonial
	reviews      map[int64]model.Review
	sheets       map[int64]model.ScoreSheet
	nextID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		testimonials: make(map[int64]model.Testimonial),
		reviews:      make(map[int64]model.Review),
		sheets:       make(map[int64]model.ScoreSheet),
		nextID:       1,
	}
}

func (s *fakeStore) CreateTestimonial(_ context.Context, t model.Testimonial) (int64, error) {
	t.ID = s.nextID
	s.nextID++
	s.testimonials[t.ID] = t
	return t.ID, nil
}

func (s *fakeStore) ApprovedTestimonials(_ context.Context, limit int) ([]model.Testimonial, error) {
	var out []model.Testimonial
	for _, t := range s.testimonials {
		if t.Status == "approved" && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) AllTestimonials(_ context.Context, limit int) ([]model.Testimonial, error) {
	var out []model.Testimonial
	for _, t := range s.testimonials {
		if len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateTestimonial(_ context.Context, id int64, u model.TestimonialUpdate) error {
	t, ok := s.testimonials[id]
	if !ok {
		return ErrNotFound
	}
	if u.StudentName != nil {
		t.StudentName = *u.StudentName
	}
	if u.Text != nil {
		t.Text = *u.Text
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.DisplayOrder != nil {
		t.DisplayOrder = *u.DisplayOrder
	}
	if u.IsFeatured != nil {
		t.IsFeatured = *u.IsFeatured
	}
	s.testimonials[id] = t
	return nil
}

func (s *fakeStore) DeleteTestimonial(_ context.Context, id int64) error {
	if _, ok := s.testimonials[id]; !ok {
		return ErrNotFound
	}
	delete(s.testimonials, id)
	return nil
}

func (s *fakeStore) CreateReview(_ context.Context, rv model.Review) (int64, error) {
	rv.ID = s.nextID
	s.nextID++
	s.reviews[rv.ID] = rv
	return rv.ID, nil
}

func (s *fakeStore) ListReviews(_ context.Context, minRating, limit int) ([]model.Review, error) {
	var out []model.Review
	for _, rv := range s.reviews {
		if rv.Rating >= minRating && len(out) < limit {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (s *fakeStore) AllReviews(_ context.Context, limit int) ([]model.Review, error) {
	var out []model.Review
	for _, rv := range s.reviews {
		if len(out) < limit {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateReview(_ context.Context, id int64, u model.ReviewUpdate) error {
	rv, ok := s.reviews[id]
	if !ok {
		return ErrNotFound
	}
	if u.Text != nil {
		rv.Text = *u.Text
	}
	if u.Rating != nil {
		rv.Rating = *u.Rating
	}
	if u.IsFeatured != nil {
		rv.IsFeatured = *u.IsFeatured
	}
	s.reviews[id] = rv
	return nil
}

func (s *fakeStore) DeleteReview(_ context.Context, id int64) error {
	if _, ok := s.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *fakeStore) CreateScoreSheet(_ context.Context, sheet model.ScoreSheet) (int64, error) {
	sheet.ID = s.nextID
	s.nextID++
	s.sheets[sheet.ID] = sheet
	return sheet.ID, nil
}

func (s *fakeStore) ListScoreSheets(_ context.Context, examType string, featuredOnly bool, limit int) ([]model.ScoreSheet, error) {
	var out []model.ScoreSheet
	for _, sheet := range s.sheets {
		if examType != "" && sheet.ExamType != examType {
			continue
		}
		if featuredOnly && !sheet.IsFeatured {
			continue
		}
		if len(out) < limit {
			out = append(out, sheet)
		}
	}
	return out, nil
}

func (s *fakeStore) AllScoreSheets(_ context.Context, limit int) ([]model.ScoreSheet, error) {
	var out []model.ScoreSheet
	for _, sheet := range s.sheets {
		if len(out) < limit {
			out = append(out, sheet)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateScoreSheet(_ context.Context, id int64, u model.ScoreSheetUpdate) error {
	sheet, ok := s.sheets[id]
	if !ok {
		return ErrNotFound
	}
	if u.StudentName != nil {
		sheet.StudentName = *u.StudentName
	}
	if u.ExamType != nil {
		sheet.ExamType = *u.ExamType
	}
	if u.IsFeatured != nil {
		sheet.IsFeatured = *u.IsFeatured
	}
	s.sheets[id] = sheet
	return nil
}

func (s *fakeStore) DeleteScoreSheet(_ context.Context, id int64) error {
	if _, ok := s.sheets[id]; !ok {
		return ErrNotFound
	}
	delete(s.sheets, id)
	return nil
}

func TestAllTestimonialsIncludesPending(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.AddTestimonial(ctx, model.Testimonial{StudentName: "Asha", Text: "Great center"}); err != nil {
		t.Fatalf("add approved: %v", err)
	}
	pendingID, err := svc.AddTestimonial(ctx, model.Testimonial{StudentName: "Ben", Text: "Waiting", Status: "pending"})
	if err != nil {
		t.Fatalf("add pending: %v", err)
	}

	public, err := svc.Testimonials(ctx, 10)
	if err != nil {
		t.Fatalf("public listing: %v", err)
	}
	for _, item := range public {
		if item.ID == pendingID {
			t.Fatal("pending testimonial leaked into the public listing")
		}
	}

	all, err := svc.AllTestimonials(ctx, 10)
	if err != nil {
		t.Fatalf("admin listing: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin listing must include pending items: got %d want 2", len(all))
	}
}

func TestUpdateTestimonialModeration(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	id, err := svc.AddTestimonial(ctx, model.Testimonial{StudentName: "Asha", Text: "Great center", Status: "pending"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	approved := "approved"
	order := 3
	featured := true
	if err := svc.UpdateTestimonial(ctx, id, model.TestimonialUpdate{
		Status:       &approved,
		DisplayOrder: &order,
		IsFeatured:   &featured,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := store.testimonials[id]
	if got.Status != "approved" || got.DisplayOrder != 3 || !got.IsFeatured {
		t.Fatalf("moderation fields not applied: %+v", got)
	}
}

func TestUpdateTestimonialRejectsBlankFields(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	id, err := svc.AddTestimonial(ctx, model.Testimonial{StudentName: "Asha", Text: "Great center"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	blank := "  "
	if err := svc.UpdateTestimonial(ctx, id, model.TestimonialUpdate{StudentName: &blank}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if err := svc.UpdateTestimonial(ctx, id, model.TestimonialUpdate{Text: &blank}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank text, got %v", err)
	}
	if err := svc.UpdateTestimonial(ctx, id, model.TestimonialUpdate{Status: &blank}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank status, got %v", err)
	}
}

func TestUpdateTestimonialNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	order := 1
	if err := svc.UpdateTestimonial(context.Background(), 99, model.TestimonialUpdate{DisplayOrder: &order}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReviewValidatesRating(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	id, err := svc.AddReview(ctx, model.Review{ReviewerName: "Mina", Rating: 4})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, rating := range []int{0, 6, -1} {
		r := rating
		if err := svc.UpdateReview(ctx, id, model.ReviewUpdate{Rating: &r}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", rating, err)
		}
	}

	five := 5
	if err := svc.UpdateReview(ctx, id, model.ReviewUpdate{Rating: &five}); err != nil {
		t.Fatalf("valid rating update: %v", err)
	}
	if store.reviews[id].Rating != 5 {
		t.Fatalf("rating not applied: %+v", store.reviews[id])
	}
}

func TestUpdateScoreSheet(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	id, err := svc.AddScoreSheet(ctx, model.ScoreSheet{StudentName: "Ravi", ExamType: "PTE"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	blank := ""
	if err := svc.UpdateScoreSheet(ctx, id, model.ScoreSheetUpdate{ExamType: &blank}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank exam type, got %v", err)
	}

	featured := true
	if err := svc.UpdateScoreSheet(ctx, id, model.ScoreSheetUpdate{IsFeatured: &featured}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !store.sheets[id].IsFeatured {
		t.Fatalf("featured flag not applied: %+v", store.sheets[id])
	}
}
