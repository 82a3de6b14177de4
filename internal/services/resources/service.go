package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
)

var (
	ErrInvalidInput     = errors.New("invalid resource input")
	ErrResourceNotFound = errors.New("resource not found")
	ErrNotAssigned      = errors.New("resource is not assigned to the student")
	ErrAlreadyAssigned  = errors.New("resource is already assigned to the student")
)

type ResourceStore interface {
	Create(ctx context.Context, res model.Resource) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Resource, error)
	ListActive(ctx context.Context) ([]model.Resource, error)
	Update(ctx context.Context, id int64, update model.ResourceUpdate) error
	IncrementDownloadCount(ctx context.Context, id int64) error
}

type AssignmentStore interface {
	Assign(ctx context.Context, userID, resourceID int64, category enums.ResourceCategory, adminID int64) (int64, error)
	Find(ctx context.Context, userID, resourceID int64) (model.Assignment, error)
	ListForUser(ctx context.Context, userID int64, category *enums.ResourceCategory) ([]model.AssignedResource, error)
	UpdateProgress(ctx context.Context, assignmentID int64, update model.ProgressUpdate) error
	TouchAccess(ctx context.Context, assignmentID int64) error
	MarkCategoryComplete(ctx context.Context, userID int64, category enums.ResourceCategory, adminID int64) (int64, error)
	SummaryForUser(ctx context.Context, userID int64) ([]model.CategorySummary, error)
	DetailForUser(ctx context.Context, userID int64) ([]model.ProgressDetail, error)
}

// FileStore resolves view links for stored files. Implemented by the
// storage service.
type FileStore interface {
	ViewURL(ctx context.Context, res model.Resource) (string, error)
}

type Service struct {
	resources   ResourceStore
	assignments AssignmentStore
	files       FileStore
}

func NewService(resources ResourceStore, assignments AssignmentStore, files FileStore) *Service {
	return &Service{
		resources:   resources,
		assignments: assignments,
		files:       files,
	}
}

func (s *Service) Create(ctx context.Context, res model.Resource) (model.Resource, error) {
	res.Name = strings.TrimSpace(res.Name)
	if res.Name == "" || res.Type == "" || res.FileID == "" {
		return model.Resource{}, ErrInvalidInput
	}

	id, err := s.resources.Create(ctx, res)
	if err != nil {
		return model.Resource{}, err
	}

	return s.resources.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]model.Resource, error) {
	return s.resources.ListActive(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Resource, error) {
	return s.resources.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, update model.ResourceUpdate) (model.Resource, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return model.Resource{}, ErrInvalidInput
		}
		update.Name = &name
	}

	if err := s.resources.Update(ctx, id, update); err != nil {
		return model.Resource{}, err
	}

	return s.resources.FindByID(ctx, id)
}

// Deactivate soft-deletes a resource. The stored file stays around so
// existing download links keep working until cleanup.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	inactive := false
	return s.resources.Update(ctx, id, model.ResourceUpdate{IsActive: &inactive})
}

func (s *Service) Assign(ctx context.Context, userID, resourceID int64, category enums.ResourceCategory, adminID int64) (int64, error) {
	if _, ok := enums.ParseResourceCategory(string(category)); !ok {
		return 0, ErrInvalidInput
	}

	res, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		return 0, err
	}
	if !res.IsActive {
		return 0, ErrResourceNotFound
	}

	return s.assignments.Assign(ctx, userID, resourceID, category, adminID)
}

func (s *Service) MarkCategoryComplete(ctx context.Context, userID int64, category enums.ResourceCategory, adminID int64) (int64, error) {
	if _, ok := enums.ParseResourceCategory(string(category)); !ok {
		return 0, ErrInvalidInput
	}
	return s.assignments.MarkCategoryComplete(ctx, userID, category, adminID)
}

func (s *Service) ProgressDetail(ctx context.Context, userID int64) ([]model.ProgressDetail, error) {
	return s.assignments.DetailForUser(ctx, userID)
}

// AssignedTo lists a student's resources, optionally within one category.
func (s *Service) AssignedTo(ctx context.Context, userID int64, category *enums.ResourceCategory) ([]model.AssignedResource, error) {
	return s.assignments.ListForUser(ctx, userID, category)
}

// View checks the student is actually assigned the resource, then hands back
// a fresh link and records the access.
func (s *Service) View(ctx context.Context, userID, resourceID int64) (model.Resource, string, error) {
	assignment, err := s.assignments.Find(ctx, userID, resourceID)
	if err != nil {
		return model.Resource{}, "", err
	}

	res, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		return model.Resource{}, "", err
	}
	if !res.IsActive {
		return model.Resource{}, "", ErrResourceNotFound
	}

	viewURL, err := s.files.ViewURL(ctx, res)
	if err != nil {
		return model.Resource{}, "", fmt.Errorf("resolve view url: %w", err)
	}

	if err := s.resources.IncrementDownloadCount(ctx, resourceID); err != nil {
		return model.Resource{}, "", err
	}
	if err := s.assignments.TouchAccess(ctx, assignment.ID); err != nil {
		return model.Resource{}, "", err
	}

	return res, viewURL, nil
}

// UpdateProgress clamps completion to [0, 100] and rejects negative time
// before writing.
func (s *Service) UpdateProgress(ctx context.Context, userID, resourceID int64, update model.ProgressUpdate) (model.Assignment, error) {
	if update.CompletionPercentage == nil && update.TimeSpentMinutes == nil {
		return model.Assignment{}, ErrInvalidInput
	}
	if update.CompletionPercentage != nil {
		pct := *update.CompletionPercentage
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		update.CompletionPercentage = &pct
	}
	if update.TimeSpentMinutes != nil && *update.TimeSpentMinutes < 0 {
		return model.Assignment{}, ErrInvalidInput
	}

	assignment, err := s.assignments.Find(ctx, userID, resourceID)
	if err != nil {
		return model.Assignment{}, err
	}

	if err := s.assignments.UpdateProgress(ctx, assignment.ID, update); err != nil {
		return model.Assignment{}, err
	}

	return s.assignments.Find(ctx, userID, resourceID)
}

func (s *Service) Summary(ctx context.Context, userID int64) ([]model.CategorySummary, error) {
	return s.assignments.SummaryForUser(ctx, userID)
}

// Categories returns the fixed study categories in display order.
func (s *Service) Categories() []enums.ResourceCategory {
	return enums.ResourceCategories()
}
