package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
	resourcessvc "github.com/coachpoint/backend/internal/services/resources"
)

type AssignmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepo(pool *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{pool: pool}
}

func (r *AssignmentRepo) Assign(ctx context.Context, userID, resourceID int64, category enums.ResourceCategory, adminID int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 || resourceID <= 0 {
		return 0, resourcessvc.ErrInvalidInput
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO user_resources (user_id, resource_id, category, assigned_by_admin_id, assigned_at)
VALUES ($1, $2, $3, $4, NOW())
RETURNING id
`, userID, resourceID, category, adminID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, resourcessvc.ErrAlreadyAssigned
		}
		return 0, fmt.Errorf("insert assignment: %w", err)
	}

	return id, nil
}

func (r *AssignmentRepo) Find(ctx context.Context, userID, resourceID int64) (model.Assignment, error) {
	if r.pool == nil {
		return model.Assignment{}, fmt.Errorf("postgres pool is nil")
	}

	var a model.Assignment
	err := r.pool.QueryRow(ctx, `
SELECT id, user_id, resource_id, category, assigned_by_admin_id,
	completion_percentage, time_spent_minutes, is_completed, completed_by_admin_id,
	assigned_at, last_accessed_at, completed_at
FROM user_resources
WHERE user_id = $1 AND resource_id = $2
`, userID, resourceID).Scan(
		&a.ID, &a.UserID, &a.ResourceID, &a.Category, &a.AssignedByAdminID,
		&a.CompletionPercentage, &a.TimeSpentMinutes, &a.IsCompleted, &a.CompletedByAdminID,
		&a.AssignedAt, &a.LastAccessedAt, &a.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Assignment{}, resourcessvc.ErrNotAssigned
		}
		return model.Assignment{}, fmt.Errorf("find assignment: %w", err)
	}

	return a, nil
}

// ListForUser returns the student's assigned resources joined with resource
// details, optionally restricted to a single category.
func (r *AssignmentRepo) ListForUser(ctx context.Context, userID int64, category *enums.ResourceCategory) ([]model.AssignedResource, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	query := `
SELECT ur.id, ur.user_id, ur.resource_id, ur.category, ur.assigned_by_admin_id,
	ur.completion_percentage, ur.time_spent_minutes, ur.is_completed, ur.completed_by_admin_id,
	ur.assigned_at, ur.last_accessed_at, ur.completed_at,
	res.resource_name, res.description, res.resource_type, res.file_size, res.duration,
	res.storage, res.file_id, res.file_url, res.thumbnail_url
FROM user_resources ur
JOIN resources res ON res.id = ur.resource_id
WHERE ur.user_id = $1 AND res.is_active
`
	args := []any{userID}
	if category != nil {
		query += " AND ur.category = $2"
		args = append(args, *category)
	}
	query += " ORDER BY ur.assigned_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var out []model.AssignedResource
	for rows.Next() {
		var a model.AssignedResource
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ResourceID, &a.Category, &a.AssignedByAdminID,
			&a.CompletionPercentage, &a.TimeSpentMinutes, &a.IsCompleted, &a.CompletedByAdminID,
			&a.AssignedAt, &a.LastAccessedAt, &a.CompletedAt,
			&a.ResourceName, &a.Description, &a.ResourceType, &a.FileSize, &a.Duration,
			&a.Storage, &a.FileID, &a.FileURL, &a.ThumbnailURL,
		); err != nil {
			return nil, fmt.Errorf("scan assignment row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignment rows: %w", err)
	}

	return out, nil
}

func (r *AssignmentRepo) UpdateProgress(ctx context.Context, assignmentID int64, update model.ProgressUpdate) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if assignmentID <= 0 {
		return resourcessvc.ErrInvalidInput
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE user_resources SET
	completion_percentage = COALESCE($2, completion_percentage),
	time_spent_minutes = time_spent_minutes + COALESCE($3, 0),
	is_completed = CASE WHEN COALESCE($2, completion_percentage) >= 100 THEN TRUE ELSE is_completed END,
	completed_at = CASE
		WHEN COALESCE($2, completion_percentage) >= 100 AND completed_at IS NULL THEN NOW()
		ELSE completed_at
	END,
	last_accessed_at = NOW()
WHERE id = $1
`, assignmentID, update.CompletionPercentage, update.TimeSpentMinutes)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return resourcessvc.ErrNotAssigned
	}

	return nil
}

func (r *AssignmentRepo) TouchAccess(ctx context.Context, assignmentID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE user_resources SET last_accessed_at = NOW() WHERE id = $1
`, assignmentID); err != nil {
		return fmt.Errorf("touch assignment: %w", err)
	}

	return nil
}

// MarkCategoryComplete force-completes every assignment the student has in the
// category and records which admin did it.
func (r *AssignmentRepo) MarkCategoryComplete(ctx context.Context, userID int64, category enums.ResourceCategory, adminID int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return 0, resourcessvc.ErrInvalidInput
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE user_resources SET
	completion_percentage = 100,
	is_completed = TRUE,
	completed_by_admin_id = $3,
	completed_at = COALESCE(completed_at, NOW())
WHERE user_id = $1 AND category = $2 AND NOT is_completed
`, userID, category, adminID)
	if err != nil {
		return 0, fmt.Errorf("mark category complete: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *AssignmentRepo) SummaryForUser(ctx context.Context, userID int64) ([]model.CategorySummary, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT ur.category,
	COUNT(*),
	COUNT(*) FILTER (WHERE ur.is_completed),
	COALESCE(ROUND(AVG(ur.completion_percentage)::numeric, 2), 0),
	COALESCE(SUM(ur.time_spent_minutes), 0)
FROM user_resources ur
JOIN resources res ON res.id = ur.resource_id
WHERE ur.user_id = $1 AND res.is_active
GROUP BY ur.category
`, userID)
	if err != nil {
		return nil, fmt.Errorf("progress summary: %w", err)
	}
	defer rows.Close()

	var out []model.CategorySummary
	for rows.Next() {
		var s model.CategorySummary
		if err := rows.Scan(&s.Category, &s.TotalResources, &s.CompletedResources, &s.AvgCompletion, &s.TotalTimeSpent); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary rows: %w", err)
	}

	return out, nil
}

// DetailForUser is the admin view of one student's progress, assignment by
// assignment, with the names of the admins involved.
func (r *AssignmentRepo) DetailForUser(ctx context.Context, userID int64) ([]model.ProgressDetail, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT ur.id, ur.user_id, ur.resource_id, ur.category, ur.assigned_by_admin_id,
	ur.completion_percentage, ur.time_spent_minutes, ur.is_completed, ur.completed_by_admin_id,
	ur.assigned_at, ur.last_accessed_at, ur.completed_at,
	res.resource_name, res.resource_type,
	COALESCE(ab.full_name, ''), COALESCE(cb.full_name, '')
FROM user_resources ur
JOIN resources res ON res.id = ur.resource_id
LEFT JOIN users ab ON ab.id = ur.assigned_by_admin_id
LEFT JOIN users cb ON cb.id = ur.completed_by_admin_id
WHERE ur.user_id = $1
ORDER BY ur.category, ur.assigned_at DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("progress detail: %w", err)
	}
	defer rows.Close()

	var out []model.ProgressDetail
	for rows.Next() {
		var d model.ProgressDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ResourceID, &d.Category, &d.AssignedByAdminID,
			&d.CompletionPercentage, &d.TimeSpentMinutes, &d.IsCompleted, &d.CompletedByAdminID,
			&d.AssignedAt, &d.LastAccessedAt, &d.CompletedAt,
			&d.ResourceName, &d.ResourceType,
			&d.AssignedByName, &d.CompletedByName,
		); err != nil {
			return nil, fmt.Errorf("scan detail row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate detail rows: %w", err)
	}

	return out, nil
}
