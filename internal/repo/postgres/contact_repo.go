package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coachpoint/backend/internal/domain/model"
)

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

func (r *ContactRepo) Create(ctx context.Context, sub model.ContactSubmission) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO contact_submissions (name, email, phone, subject, message, source_page, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
RETURNING id
`, sub.Name, sub.Email, sub.Phone, sub.Subject, sub.Message, sub.SourcePage).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert contact submission: %w", err)
	}

	return id, nil
}
