// Package pantry implements pantry item tracking, expiry queries and
// cleanup.
package pantry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// ExpiringSoonWindow is how far ahead "expiring soon" looks.
const ExpiringSoonWindow = 7 * 24 * time.Hour

// pantryRepo defines the repository interface needed by pantry service.
type pantryRepo interface {
	Create(ctx context.Context, item *domain.PantryItem) (*domain.PantryItem, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.PantryItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error)
	Update(ctx context.Context, item *domain.PantryItem) (*domain.PantryItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Expiring(ctx context.Context, userID uuid.UUID, deadline time.Time) ([]*domain.PantryItem, error)
	DeleteExpired(ctx context.Context, userID uuid.UUID) (int, error)
	Stats(ctx context.Context, userID uuid.UUID) (*domain.PantryStats, error)
}

// Service implements pantry operations.
type Service struct {
	log  *slog.Logger
	repo pantryRepo
}

// NewService creates a new pantry service instance.
func NewService(logger *slog.Logger, repo pantryRepo) *Service {
	return &Service{
		log:  logger.With("service", "pantry"),
		repo: repo,
	}
}

// ItemInput holds the payload for adding or updating a pantry item.
type ItemInput struct {
	Name      string
	Quantity  float64
	Unit      string
	Category  string
	ExpiresAt *time.Time
}

// Validate validates the item input.
func (i ItemInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if len(i.Unit) > 32 {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "too long"})
	}
	if len(i.Category) > 100 {
		errs = append(errs, domain.FieldError{Field: "category", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
