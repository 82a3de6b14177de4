package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
)

var (
	ErrInvalidInput = errors.New("invalid post input")
	ErrPostNotFound = errors.New("post not found")
	ErrSlugTaken    = errors.New("slug already in use")
)

type PostStore interface {
	Create(ctx context.Context, post model.Post) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Post, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (model.Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]model.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Post, error)
	Count(ctx context.Context, status *enums.PostStatus) (int64, error)
	Update(ctx context.Context, id int64, update model.PostUpdate) error
	Delete(ctx context.Context, id int64) error
}

const publicPageSize = 12

type Service struct {
	posts PostStore
}

func NewService(posts PostStore) *Service {
	return &Service{posts: posts}
}

type Page struct {
	Posts      []model.Post
	Total      int64
	Page       int
	PerPage    int
	TotalPages int64
}

// PublishedPage serves the public blog listing, 12 posts per page.
func (s *Service) PublishedPage(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}

	status := enums.PostPublished
	total, err := s.posts.Count(ctx, &status)
	if err != nil {
		return Page{}, fmt.Errorf("count published posts: %w", err)
	}

	items, err := s.posts.ListPublished(ctx, publicPageSize, (page-1)*publicPageSize)
	if err != nil {
		return Page{}, fmt.Errorf("list published posts: %w", err)
	}

	return Page{
		Posts:      items,
		Total:      total,
		Page:       page,
		PerPage:    publicPageSize,
		TotalPages: (total + publicPageSize - 1) / publicPageSize,
	}, nil
}

func (s *Service) PublishedBySlug(ctx context.Context, slug string) (model.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return model.Post{}, ErrPostNotFound
	}
	return s.posts.FindBySlug(ctx, slug, true)
}

// AdminPage lists every post regardless of status.
func (s *Service) AdminPage(ctx context.Context, page, perPage int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	total, err := s.posts.Count(ctx, nil)
	if err != nil {
		return Page{}, fmt.Errorf("count posts: %w", err)
	}

	items, err := s.posts.ListAll(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return Page{}, fmt.Errorf("list posts: %w", err)
	}

	return Page{
		Posts:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (total + int64(perPage) - 1) / int64(perPage),
	}, nil
}

func (s *Service) Create(ctx context.Context, post model.Post) (model.Post, error) {
	post.Title = strings.TrimSpace(post.Title)
	post.Slug = strings.TrimSpace(strings.ToLower(post.Slug))
	if post.Title == "" || post.Slug == "" || post.Content == "" {
		return model.Post{}, ErrInvalidInput
	}
	if post.Status == "" {
		post.Status = enums.PostDraft
	}

	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return model.Post{}, err
	}

	return s.posts.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, update model.PostUpdate) (model.Post, error) {
	if update.Slug != nil {
		slug := strings.TrimSpace(strings.ToLower(*update.Slug))
		if slug == "" {
			return model.Post{}, ErrInvalidInput
		}
		update.Slug = &slug
	}

	if err := s.posts.Update(ctx, id, update); err != nil {
		return model.Post{}, err
	}

	return s.posts.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}
