package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/coachpoint/backend/internal/domain/model"
	"github.com/coachpoint/backend/internal/pkg/validate"
)

var ErrInvalidInput = errors.New("invalid contact input")

type Store interface {
	Create(ctx context.Context, sub model.ContactSubmission) (int64, error)
}

// Service persists contact form submissions. There is no outbound mail,
// the admin team reads them from the database.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

func (s *Service) Submit(ctx context.Context, sub model.ContactSubmission) (int64, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(strings.ToLower(sub.Email))
	sub.Message = strings.TrimSpace(sub.Message)

	if sub.Name == "" || sub.Message == "" || !validate.Email(sub.Email) {
		return 0, ErrInvalidInput
	}
	if sub.Phone != "" && !validate.Phone(sub.Phone) {
		return 0, ErrInvalidInput
	}

	id, err := s.store.Create(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("store contact submission: %w", err)
	}

	s.logger.Info("contact submission received",
		zap.Int64("id", id),
		zap.String("source_page", sub.SourcePage),
	)

	return id, nil
}
