package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// CreateCategory adds a user-scoped category. Names are unique per user;
// a duplicate returns ErrConflict.
func (s *Service) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "name", Message: "must be 1-100 characters"},
		}}
	}

	category := &domain.Category{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}

	created, err := s.userRecipes.CreateCategory(ctx, category)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("recipe.CreateCategory: name taken: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("recipe.CreateCategory: %w", err)
	}
	return created, nil
}

// ListCategories returns all of the user's categories.
func (s *Service) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	categories, err := s.userRecipes.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recipe.ListCategories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes a category; assignments cascade away with it.
func (s *Service) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.userRecipes.DeleteCategory(ctx, userID, id); err != nil {
		return fmt.Errorf("recipe.DeleteCategory: %w", err)
	}
	return nil
}

// AssignCategory tags one of the user's recipes with one of the user's
// categories. Both must belong to the caller; assigning twice is a no-op.
func (s *Service) AssignCategory(ctx context.Context, userID, recipeID, categoryID uuid.UUID) error {
	// Ownership checks; cross-user ids read as not found.
	if _, err := s.userRecipes.GetByID(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("recipe.AssignCategory get recipe: %w", err)
	}
	if err := s.ownsCategory(ctx, userID, categoryID); err != nil {
		return fmt.Errorf("recipe.AssignCategory: %w", err)
	}

	if err := s.userRecipes.AssignCategory(ctx, recipeID, categoryID); err != nil {
		return fmt.Errorf("recipe.AssignCategory: %w", err)
	}
	return nil
}

// UnassignCategory removes a tag from a recipe.
func (s *Service) UnassignCategory(ctx context.Context, userID, recipeID, categoryID uuid.UUID) error {
	if _, err := s.userRecipes.GetByID(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("recipe.UnassignCategory get recipe: %w", err)
	}

	if err := s.userRecipes.UnassignCategory(ctx, recipeID, categoryID); err != nil {
		return fmt.Errorf("recipe.UnassignCategory: %w", err)
	}
	return nil
}

// ListRecipeCategories returns the categories assigned to one recipe.
func (s *Service) ListRecipeCategories(ctx context.Context, userID, recipeID uuid.UUID) ([]*domain.Category, error) {
	if _, err := s.userRecipes.GetByID(ctx, userID, recipeID); err != nil {
		return nil, fmt.Errorf("recipe.ListRecipeCategories get recipe: %w", err)
	}

	categories, err := s.userRecipes.ListCategoriesForRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("recipe.ListRecipeCategories: %w", err)
	}
	return categories, nil
}

func (s *Service) ownsCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	categories, err := s.userRecipes.ListCategories(ctx, userID)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.ID == categoryID {
			return nil
		}
	}
	return domain.ErrNotFound
}
