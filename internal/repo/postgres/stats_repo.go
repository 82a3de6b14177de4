package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coachpoint/backend/internal/domain/model"
)

// StatsRepo aggregates the numbers behind the admin dashboard.
type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	if r.pool == nil {
		return model.DashboardStats{}, fmt.Errorf("postgres pool is nil")
	}

	var stats model.DashboardStats
	err := r.pool.QueryRow(ctx, `
SELECT
	(SELECT COUNT(*) FROM users WHERE role = 'student'),
	(SELECT COUNT(*) FROM users WHERE role = 'student' AND is_active),
	(SELECT COUNT(*) FROM resources WHERE is_active),
	(SELECT COALESCE(ROUND(AVG(completion_percentage)::numeric, 2), 0) FROM user_resources),
	(SELECT COUNT(*) FROM users WHERE role = 'student' AND created_at >= NOW() - INTERVAL '30 days')
`).Scan(
		&stats.TotalStudents, &stats.ActiveStudents, &stats.TotalResources,
		&stats.AvgCompletionRate, &stats.RecentSignups,
	)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}

	activities, err := r.recentCompletions(ctx, 10)
	if err != nil {
		return model.DashboardStats{}, err
	}
	stats.RecentActivities = activities

	return stats, nil
}

func (r *StatsRepo) recentCompletions(ctx context.Context, limit int) ([]model.RecentCompletion, error) {
	rows, err := r.pool.Query(ctx, `
SELECT u.full_name, ur.category, res.resource_name, ur.completed_at
FROM user_resources ur
JOIN users u ON u.id = ur.user_id
JOIN resources res ON res.id = ur.resource_id
WHERE ur.is_completed AND ur.completed_at >= NOW() - INTERVAL '7 days'
ORDER BY ur.completed_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent completions: %w", err)
	}
	defer rows.Close()

	var out []model.RecentCompletion
	for rows.Next() {
		var c model.RecentCompletion
		if err := rows.Scan(&c.StudentName, &c.Category, &c.ResourceName, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan completion row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion rows: %w", err)
	}

	return out, nil
}
