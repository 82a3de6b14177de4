package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coachpoint/backend/internal/domain/model"
	showcasesvc "github.com/coachpoint/backend/internal/services/showcase"
)

// ShowcaseRepo backs the marketing surfaces: testimonials, reviews and
// published score sheets.
type ShowcaseRepo struct {
	pool *pgxpool.Pool
}

func NewShowcaseRepo(pool *pgxpool.Pool) *ShowcaseRepo {
	return &ShowcaseRepo{pool: pool}
}

func (r *ShowcaseRepo) CreateTestimonial(ctx context.Context, t model.Testimonial) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO testimonials
	(student_name, student_photo_url, score_before, score_after, score_breakdown,
	 testimonial_text, video_url, location, exam_date, is_featured, status, display_order, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
RETURNING id
`, t.StudentName, t.StudentPhotoURL, t.ScoreBefore, t.ScoreAfter, t.ScoreBreakdown,
		t.Text, t.VideoURL, t.Location, t.ExamDate, t.IsFeatured, t.Status, t.DisplayOrder).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert testimonial: %w", err)
	}

	return id, nil
}

// ApprovedTestimonials is the public listing, ordered the way the admin
// arranged them.
func (r *ShowcaseRepo) ApprovedTestimonials(ctx context.Context, limit int) ([]model.Testimonial, error) {
	return r.listTestimonials(ctx, `
SELECT id, student_name, student_photo_url, score_before, score_after, score_breakdown,
	testimonial_text, video_url, location, exam_date, is_featured, status, display_order, created_at
FROM testimonials
WHERE status = 'approved'
ORDER BY display_order, created_at DESC
LIMIT $1
`, limit)
}

// AllTestimonials is the admin listing: every status, pending included.
func (r *ShowcaseRepo) AllTestimonials(ctx context.Context, limit int) ([]model.Testimonial, error) {
	return r.listTestimonials(ctx, `
SELECT id, student_name, student_photo_url, score_before, score_after, score_breakdown,
	testimonial_text, video_url, location, exam_date, is_featured, status, display_order, created_at
FROM testimonials
ORDER BY display_order, created_at DESC
LIMIT $1
`, limit)
}

func (r *ShowcaseRepo) listTestimonials(ctx context.Context, query string, args ...any) ([]model.Testimonial, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var out []model.Testimonial
	for rows.Next() {
		var t model.Testimonial
		if err := rows.Scan(
			&t.ID, &t.StudentName, &t.StudentPhotoURL, &t.ScoreBefore, &t.ScoreAfter, &t.ScoreBreakdown,
			&t.Text, &t.VideoURL, &t.Location, &t.ExamDate, &t.IsFeatured, &t.Status, &t.DisplayOrder, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan testimonial row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate testimonial rows: %w", err)
	}

	return out, nil
}

func (r *ShowcaseRepo) UpdateTestimonial(ctx context.Context, id int64, u model.TestimonialUpdate) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE testimonials SET
	student_name = COALESCE($2, student_name),
	student_photo_url = COALESCE($3, student_photo_url),
	score_before = COALESCE($4, score_before),
	score_after = COALESCE($5, score_after),
	score_breakdown = COALESCE($6, score_breakdown),
	testimonial_text = COALESCE($7, testimonial_text),
	video_url = COALESCE($8, video_url),
	location = COALESCE($9, location),
	exam_date = COALESCE($10, exam_date),
	is_featured = COALESCE($11, is_featured),
	status = COALESCE($12, status),
	display_order = COALESCE($13, display_order)
WHERE id = $1
`, id, u.StudentName, u.StudentPhotoURL, u.ScoreBefore, u.ScoreAfter, u.ScoreBreakdown,
		u.Text, u.VideoURL, u.Location, u.ExamDate, u.IsFeatured, u.Status, u.DisplayOrder)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return showcasesvc.ErrNotFound
	}

	return nil
}

func (r *ShowcaseRepo) DeleteTestimonial(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "testimonials", id)
}

func (r *ShowcaseRepo) CreateReview(ctx context.Context, rv model.Review) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return 0, showcasesvc.ErrInvalidInput
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO reviews
	(reviewer_name, reviewer_photo_url, review_text, rating, google_review_url,
	 review_date, is_featured, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
RETURNING id
`, rv.ReviewerName, rv.ReviewerPhotoURL, rv.Text, rv.Rating, rv.GoogleReviewURL,
		rv.ReviewDate, rv.IsFeatured).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}

	return id, nil
}

func (r *ShowcaseRepo) ListReviews(ctx context.Context, minRating, limit int) ([]model.Review, error) {
	return r.listReviews(ctx, `
SELECT id, reviewer_name, reviewer_photo_url, review_text, rating, google_review_url,
	review_date, is_featured, created_at
FROM reviews
WHERE rating >= $1
ORDER BY is_featured DESC, review_date DESC NULLS LAST, created_at DESC
LIMIT $2
`, minRating, limit)
}

func (r *ShowcaseRepo) AllReviews(ctx context.Context, limit int) ([]model.Review, error) {
	return r.listReviews(ctx, `
SELECT id, reviewer_name, reviewer_photo_url, review_text, rating, google_review_url,
	review_date, is_featured, created_at
FROM reviews
ORDER BY is_featured DESC, review_date DESC NULLS LAST, created_at DESC
LIMIT $1
`, limit)
}

func (r *ShowcaseRepo) listReviews(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(
			&rv.ID, &rv.ReviewerName, &rv.ReviewerPhotoURL, &rv.Text, &rv.Rating, &rv.GoogleReviewURL,
			&rv.ReviewDate, &rv.IsFeatured, &rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return out, nil
}

func (r *ShowcaseRepo) UpdateReview(ctx context.Context, id int64, u model.ReviewUpdate) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE reviews SET
	reviewer_name = COALESCE($2, reviewer_name),
	reviewer_photo_url = COALESCE($3, reviewer_photo_url),
	review_text = COALESCE($4, review_text),
	rating = COALESCE($5, rating),
	google_review_url = COALESCE($6, google_review_url),
	review_date = COALESCE($7, review_date),
	is_featured = COALESCE($8, is_featured)
WHERE id = $1
`, id, u.ReviewerName, u.ReviewerPhotoURL, u.Text, u.Rating, u.GoogleReviewURL,
		u.ReviewDate, u.IsFeatured)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return showcasesvc.ErrNotFound
	}

	return nil
}

func (r *ShowcaseRepo) DeleteReview(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "reviews", id)
}

func (r *ShowcaseRepo) CreateScoreSheet(ctx context.Context, s model.ScoreSheet) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO score_sheets
	(student_name, exam_type, overall_score, listening_score, reading_score,
	 speaking_score, writing_score, image_url, exam_date, location, is_featured, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
RETURNING id
`, s.StudentName, s.ExamType, s.OverallScore, s.ListeningScore, s.ReadingScore,
		s.SpeakingScore, s.WritingScore, s.ImageURL, s.ExamDate, s.Location, s.IsFeatured).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert score sheet: %w", err)
	}

	return id, nil
}

func (r *ShowcaseRepo) ListScoreSheets(ctx context.Context, examType string, featuredOnly bool, limit int) ([]model.ScoreSheet, error) {
	query := `
SELECT id, student_name, exam_type, overall_score, listening_score, reading_score,
	speaking_score, writing_score, image_url, exam_date, location, is_featured, created_at
FROM score_sheets
WHERE ($1 = '' OR exam_type = $1)
`
	if featuredOnly {
		query += " AND is_featured"
	}
	query += " ORDER BY exam_date DESC NULLS LAST, created_at DESC LIMIT $2"

	return r.listScoreSheets(ctx, query, examType, limit)
}

func (r *ShowcaseRepo) AllScoreSheets(ctx context.Context, limit int) ([]model.ScoreSheet, error) {
	return r.listScoreSheets(ctx, `
SELECT id, student_name, exam_type, overall_score, listening_score, reading_score,
	speaking_score, writing_score, image_url, exam_date, location, is_featured, created_at
FROM score_sheets
ORDER BY exam_date DESC NULLS LAST, created_at DESC
LIMIT $1
`, limit)
}

func (r *ShowcaseRepo) listScoreSheets(ctx context.Context, query string, args ...any) ([]model.ScoreSheet, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list score sheets: %w", err)
	}
	defer rows.Close()

	var out []model.ScoreSheet
	for rows.Next() {
		var s model.ScoreSheet
		if err := rows.Scan(
			&s.ID, &s.StudentName, &s.ExamType, &s.OverallScore, &s.ListeningScore, &s.ReadingScore,
			&s.SpeakingScore, &s.WritingScore, &s.ImageURL, &s.ExamDate, &s.Location, &s.IsFeatured, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan score sheet row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score sheet rows: %w", err)
	}

	return out, nil
}

func (r *ShowcaseRepo) UpdateScoreSheet(ctx context.Context, id int64, u model.ScoreSheetUpdate) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE score_sheets SET
	student_name = COALESCE($2, student_name),
	exam_type = COALESCE($3, exam_type),
	overall_score = COALESCE($4, overall_score),
	listening_score = COALESCE($5, listening_score),
	reading_score = COALESCE($6, reading_score),
	speaking_score = COALESCE($7, speaking_score),
	writing_score = COALESCE($8, writing_score),
	image_url = COALESCE($9, image_url),
	exam_date = COALESCE($10, exam_date),
	location = COALESCE($11, location),
	is_featured = COALESCE($12, is_featured)
WHERE id = $1
`, id, u.StudentName, u.ExamType, u.OverallScore, u.ListeningScore, u.ReadingScore,
		u.SpeakingScore, u.WritingScore, u.ImageURL, u.ExamDate, u.Location, u.IsFeatured)
	if err != nil {
		return fmt.Errorf("update score sheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return showcasesvc.ErrNotFound
	}

	return nil
}

func (r *ShowcaseRepo) DeleteScoreSheet(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "score_sheets", id)
}

func (r *ShowcaseRepo) deleteByID(ctx context.Context, table string, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return showcasesvc.ErrNotFound
	}

	return nil
}
