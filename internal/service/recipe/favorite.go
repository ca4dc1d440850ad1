package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Favorite copies a catalog recipe into the user's collection. Favoriting
// the same recipe twice returns ErrConflict and leaves the single existing
// row untouched.
func (s *Service) Favorite(ctx context.Context, userID, recipeID uuid.UUID) (*domain.UserRecipe, error) {
	catalogRecipe, err := s.catalog.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("recipe.Favorite get catalog recipe: %w", err)
	}

	favorite := domain.FromCatalog(userID, catalogRecipe)

	created, err := s.userRecipes.Create(ctx, &favorite)
	if err != nil {
		// The partial unique index guarantees at most one favorite row
		// per (user, original recipe) pair.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("recipe.Favorite: already favorited: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("recipe.Favorite: %w", err)
	}

	s.log.InfoContext(ctx, "recipe favorited",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", recipeID.String()))

	return created, nil
}

// Unfavorite removes the user's favorite row for a catalog recipe.
// Returns ErrNotFound if the recipe was never favorited.
func (s *Service) Unfavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.userRecipes.DeleteFavorite(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("recipe.Unfavorite: %w", err)
	}

	s.log.InfoContext(ctx, "recipe unfavorited",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", recipeID.String()))

	return nil
}

// ListUserRecipes returns the user's collection. With onlyCustom set, only
// user-authored recipes come back; otherwise favorites are included too.
func (s *Service) ListUserRecipes(ctx context.Context, userID uuid.UUID, onlyCustom bool) ([]*domain.UserRecipe, error) {
	recipes, err := s.userRecipes.ListByUser(ctx, userID, onlyCustom)
	if err != nil {
		return nil, fmt.Errorf("recipe.ListUserRecipes: %w", err)
	}
	return recipes, nil
}

// GetUserRecipe returns one of the user's recipes by id, favorites included.
func (s *Service) GetUserRecipe(ctx context.Context, userID, id uuid.UUID) (*domain.UserRecipe, error) {
	recipe, err := s.userRecipes.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("recipe.GetUserRecipe: %w", err)
	}
	return recipe, nil
}

// DeleteUserRecipe removes a recipe from the user's collection, whether a
// favorite copy or a custom recipe.
func (s *Service) DeleteUserRecipe(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.userRecipes.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("recipe.DeleteUserRecipe: %w", err)
	}
	return nil
}
