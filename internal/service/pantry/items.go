package pantry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Add puts a new item into the user's pantry. Expired dates are allowed:
// users do record things that are already past their date.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, input ItemInput) (*domain.PantryItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &domain.PantryItem{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(input.Name),
		Quantity:  input.Quantity,
		Unit:      input.Unit,
		Category:  input.Category,
		ExpiresAt: input.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("pantry.Add: %w", err)
	}
	return created, nil
}

// Get returns one pantry item by id.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.PantryItem, error) {
	item, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("pantry.Get: %w", err)
	}
	return item, nil
}

// List returns all of the user's pantry items.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pantry.List: %w", err)
	}
	return items, nil
}

// Update overwrites an item's fields. Returns ErrNotFound for ids that do
// not belong to the caller.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, input ItemInput) (*domain.PantryItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("pantry.Update get item: %w", err)
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Quantity = input.Quantity
	item.Unit = input.Unit
	item.Category = input.Category
	item.ExpiresAt = input.ExpiresAt

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("pantry.Update: %w", err)
	}
	return updated, nil
}

// Remove deletes one pantry item.
func (s *Service) Remove(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("pantry.Remove: %w", err)
	}
	return nil
}

// Expiring returns items that expire within the soon window, soonest first.
func (s *Service) Expiring(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error) {
	deadline := time.Now().Add(ExpiringSoonWindow)
	items, err := s.repo.Expiring(ctx, userID, deadline)
	if err != nil {
		return nil, fmt.Errorf("pantry.Expiring: %w", err)
	}
	return items, nil
}

// Cleanup deletes every expired item and returns how many went.
func (s *Service) Cleanup(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.DeleteExpired(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("pantry.Cleanup: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "expired pantry items removed",
			slog.String("user_id", userID.String()),
			slog.Int("count", count))
	}
	return count, nil
}

// Stats summarizes the user's pantry.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*domain.PantryStats, error) {
	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pantry.Stats: %w", err)
	}
	return stats, nil
}
