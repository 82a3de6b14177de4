package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coachpoint/backend/internal/domain/model"
	resourcessvc "github.com/coachpoint/backend/internal/services/resources"
)

type ResourceRepo struct {
	pool *pgxpool.Pool
}

func NewResourceRepo(pool *pgxpool.Pool) *ResourceRepo {
	return &ResourceRepo{pool: pool}
}

func (r *ResourceRepo) Create(ctx context.Context, res model.Resource) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(res.Name) == "" || res.FileID == "" {
		return 0, resourcessvc.ErrInvalidInput
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO resources
	(resource_name, description, resource_type, file_size, duration,
	 storage, file_id, file_url, thumbnail_url, is_active, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10, NOW(), NOW())
RETURNING id
`, res.Name, res.Description, res.Type, res.FileSize, res.Duration,
		res.Storage, res.FileID, res.FileURL, res.ThumbnailURL, res.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert resource: %w", err)
	}

	return id, nil
}

func (r *ResourceRepo) FindByID(ctx context.Context, id int64) (model.Resource, error) {
	if r.pool == nil {
		return model.Resource{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.Resource{}, resourcessvc.ErrInvalidInput
	}

	var res model.Resource
	err := r.pool.QueryRow(ctx, `
SELECT id, resource_name, description, resource_type, file_size, duration,
	storage, file_id, file_url, thumbnail_url, download_count, is_active, created_by, created_at, updated_at
FROM resources
WHERE id = $1
`, id).Scan(
		&res.ID, &res.Name, &res.Description, &res.Type, &res.FileSize, &res.Duration,
		&res.Storage, &res.FileID, &res.FileURL, &res.ThumbnailURL, &res.DownloadCount,
		&res.IsActive, &res.CreatedBy, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Resource{}, resourcessvc.ErrResourceNotFound
		}
		return model.Resource{}, fmt.Errorf("find resource: %w", err)
	}

	return res, nil
}

func (r *ResourceRepo) ListActive(ctx context.Context) ([]model.Resource, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT r.id, r.resource_name, r.description, r.resource_type, r.file_size, r.duration,
	r.storage, r.file_id, r.file_url, r.thumbnail_url, r.download_count, r.is_active,
	r.created_by, COALESCE(u.full_name, ''), r.created_at, r.updated_at
FROM resources r
LEFT JOIN users u ON u.id = r.created_by
WHERE r.is_active
ORDER BY r.created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		var res model.Resource
		if err := rows.Scan(
			&res.ID, &res.Name, &res.Description, &res.Type, &res.FileSize, &res.Duration,
			&res.Storage, &res.FileID, &res.FileURL, &res.ThumbnailURL, &res.DownloadCount,
			&res.IsActive, &res.CreatedBy, &res.CreatedByName, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resource row: %w", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resource rows: %w", err)
	}

	return resources, nil
}

func (r *ResourceRepo) Update(ctx context.Context, id int64, update model.ResourceUpdate) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return resourcessvc.ErrInvalidInput
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE resources SET
	resource_name = COALESCE($2, resource_name),
	description = COALESCE($3, description),
	is_active = COALESCE($4, is_active),
	updated_at = NOW()
WHERE id = $1
`, id, update.Name, update.Description, update.IsActive)
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return resourcessvc.ErrResourceNotFound
	}

	return nil
}

func (r *ResourceRepo) IncrementDownloadCount(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return resourcessvc.ErrInvalidInput
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE resources SET download_count = download_count + 1 WHERE id = $1
`, id); err != nil {
		return fmt.Errorf("increment download count: %w", err)
	}

	return nil
}
