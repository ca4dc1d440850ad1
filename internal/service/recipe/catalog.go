package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// Search runs a filtered catalog query. Limits are clamped, never rejected.
func (s *Service) Search(ctx context.Context, filter domain.RecipeFilter) (*SearchResult, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Limit <= 0 {
		filter.Limit = defaultSearchLimit
	}
	if filter.Limit > maxSearchLimit {
		filter.Limit = maxSearchLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.MaxTotalMinutes < 0 {
		filter.MaxTotalMinutes = 0
	}

	recipes, total, err := s.catalog.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("recipe.Search: %w", err)
	}

	return &SearchResult{Recipes: recipes, Total: total}, nil
}

// GetCatalogRecipe returns one catalog recipe by id.
func (s *Service) GetCatalogRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	recipe, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("recipe.GetCatalogRecipe: %w", err)
	}
	return recipe, nil
}
