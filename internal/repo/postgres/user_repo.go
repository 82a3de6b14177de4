package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
	authsvc "github.com/coachpoint/backend/internal/services/auth"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user model.User) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(user.Email) == "" || user.PasswordHash == "" {
		return 0, authsvc.ErrInvalidInput
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (email, password_hash, full_name, whatsapp_number, role, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
RETURNING id
`, user.Email, user.PasswordHash, user.FullName, user.WhatsappNumber, user.Role.String(), user.IsActive).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, authsvc.ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, full_name, whatsapp_number, location, target_score, role, is_active, created_at
FROM users
WHERE email = $1
`, email)

	return scanUser(row)
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.User{}, authsvc.ErrInvalidInput
	}

	row := r.pool.QueryRow(ctx, `
SELECT id, email, password_hash, full_name, whatsapp_number, location, target_score, role, is_active, created_at
FROM users
WHERE id = $1
`, id)

	return scanUser(row)
}

// ListWithStats pages through users together with their assignment
// aggregates for the admin user table.
func (r *UserRepo) ListWithStats(ctx context.Context, limit, offset int) ([]model.UserWithStats, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT u.id, u.email, u.full_name, u.whatsapp_number, u.location, u.target_score, u.role, u.is_active, u.created_at,
	COUNT(ur.id) AS resources_assigned,
	COUNT(ur.id) FILTER (WHERE ur.is_completed) AS resources_completed,
	COALESCE(ROUND(AVG(ur.completion_percentage)::numeric, 2), 0) AS avg_completion
FROM users u
LEFT JOIN user_resources ur ON ur.user_id = u.id
GROUP BY u.id
ORDER BY u.created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.UserWithStats
	for rows.Next() {
		var (
			u    model.UserWithStats
			role string
		)
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FullName, &u.WhatsappNumber, &u.Location, &u.TargetScore,
			&role, &u.IsActive, &u.CreatedAt,
			&u.ResourcesAssigned, &u.ResourcesCompleted, &u.AvgCompletion,
		); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		u.Role, _ = enums.ParseRole(role)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

func (r *UserRepo) CountAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return total, nil
}

func (r *UserRepo) UpdateStatus(ctx context.Context, userID int64, isActive bool) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return authsvc.ErrInvalidInput
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE users SET is_active = $2 WHERE id = $1
`, userID, isActive)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return authsvc.ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return authsvc.ErrInvalidInput
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE users SET
	full_name = COALESCE($2, full_name),
	whatsapp_number = COALESCE($3, whatsapp_number),
	location = COALESCE($4, location),
	target_score = COALESCE($5, target_score)
WHERE id = $1
`, userID, update.FullName, update.WhatsappNumber, update.Location, update.TargetScore)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return authsvc.ErrUserNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		u    model.User
		role string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.WhatsappNumber,
		&u.Location, &u.TargetScore, &role, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, authsvc.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("scan user: %w", err)
	}

	u.Role, _ = enums.ParseRole(role)
	return u, nil
}
