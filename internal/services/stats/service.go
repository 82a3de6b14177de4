package stats

import (
	"context"

	"github.com/coachpoint/backend/internal/domain/model"
)

type Store interface {
	Dashboard(ctx context.Context) (model.DashboardStats, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	return s.store.Dashboard(ctx)
}
