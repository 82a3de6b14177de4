package users

import (
	"context"
	"fmt"

	"github.com/coachpoint/backend/internal/domain/model"
)

type Store interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	ListWithStats(ctx context.Context, limit, offset int) ([]model.UserWithStats, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id int64, isActive bool) error
	UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) error
}

const adminPageSize = 20

// Service covers admin-side user management and student profile edits.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type Page struct {
	Users      []model.UserWithStats
	Total      int64
	Page       int
	PerPage    int
	TotalPages int64
}

func (s *Service) ListPage(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.store.CountAll(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("count users: %w", err)
	}

	items, err := s.store.ListWithStats(ctx, adminPageSize, (page-1)*adminPageSize)
	if err != nil {
		return Page{}, fmt.Errorf("list users: %w", err)
	}

	return Page{
		Users:      items,
		Total:      total,
		Page:       page,
		PerPage:    adminPageSize,
		TotalPages: (total + adminPageSize - 1) / adminPageSize,
	}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) SetStatus(ctx context.Context, id int64, isActive bool) (model.User, error) {
	if err := s.store.UpdateStatus(ctx, id, isActive); err != nil {
		return model.User{}, err
	}
	return s.store.FindByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (model.User, error) {
	if err := s.store.UpdateProfile(ctx, id, update); err != nil {
		return model.User{}, err
	}
	return s.store.FindByID(ctx, id)
}
