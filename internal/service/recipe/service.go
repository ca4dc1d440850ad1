// Package recipe implements catalog search, favorites, custom recipes and
// user categories.
package recipe

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// catalogRepo defines the catalog repository interface needed by recipe service.
type catalogRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	Search(ctx context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, int, error)
}

// userRecipeRepo defines the user-recipe repository interface.
type userRecipeRepo interface {
	Create(ctx context.Context, ur *domain.UserRecipe) (*domain.UserRecipe, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.UserRecipe, error)
	ListByUser(ctx context.Context, userID uuid.UUID, onlyCustom bool) ([]*domain.UserRecipe, error)
	Update(ctx context.Context, ur *domain.UserRecipe) (*domain.UserRecipe, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteFavorite(ctx context.Context, userID, originalRecipeID uuid.UUID) error
	CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
	AssignCategory(ctx context.Context, userRecipeID, categoryID uuid.UUID) error
	UnassignCategory(ctx context.Context, userRecipeID, categoryID uuid.UUID) error
	ListCategoriesForRecipe(ctx context.Context, userRecipeID uuid.UUID) ([]*domain.Category, error)
}

// Service implements recipe operations.
type Service struct {
	log         *slog.Logger
	catalog     catalogRepo
	userRecipes userRecipeRepo
}

// NewService creates a new recipe service instance.
func NewService(logger *slog.Logger, catalog catalogRepo, userRecipes userRecipeRepo) *Service {
	return &Service{
		log:         logger.With("service", "recipe"),
		catalog:     catalog,
		userRecipes: userRecipes,
	}
}

// SearchResult is one page of catalog matches plus the unpaged total.
type SearchResult struct {
	Recipes []*domain.Recipe
	Total   int
}
