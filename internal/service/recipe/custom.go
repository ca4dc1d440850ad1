package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// CustomRecipeInput holds the payload for creating or updating a custom
// recipe.
type CustomRecipeInput struct {
	Name         string
	Description  string
	Cuisine      string
	Servings     int
	PrepMinutes  int
	CookMinutes  int
	Difficulty   string
	Ingredients  []domain.Ingredient
	Instructions []string
	Nutrition    domain.Nutrition
}

// Validate validates the custom recipe input.
func (i CustomRecipeInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if len(i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	if i.Servings < 1 || i.Servings > 100 {
		errs = append(errs, domain.FieldError{Field: "servings", Message: "out of range"})
	}
	if i.PrepMinutes < 0 || i.PrepMinutes > 24*60 {
		errs = append(errs, domain.FieldError{Field: "prep_minutes", Message: "out of range"})
	}
	if i.CookMinutes < 0 || i.CookMinutes > 24*60 {
		errs = append(errs, domain.FieldError{Field: "cook_minutes", Message: "out of range"})
	}
	if i.Difficulty != "" && !slices.Contains(domain.DifficultyLevels, i.Difficulty) {
		errs = append(errs, domain.FieldError{
			Field:   "difficulty",
			Message: fmt.Sprintf("must be one of %s", strings.Join(domain.DifficultyLevels, ", ")),
		})
	}
	if len(i.Ingredients) == 0 {
		errs = append(errs, domain.FieldError{Field: "ingredients", Message: "at least one required"})
	}
	for idx, ing := range i.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("ingredients[%d].name", idx),
				Message: "required",
			})
		}
		if ing.Quantity < 0 {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("ingredients[%d].quantity", idx),
				Message: "must not be negative",
			})
		}
	}
	if len(i.Instructions) == 0 {
		errs = append(errs, domain.FieldError{Field: "instructions", Message: "at least one step required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateCustom adds a user-authored recipe to the collection.
func (s *Service) CreateCustom(ctx context.Context, userID uuid.UUID, input CustomRecipeInput) (*domain.UserRecipe, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &domain.UserRecipe{
		ID:           uuid.New(),
		UserID:       userID,
		IsCustom:     true,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Cuisine:      input.Cuisine,
		Servings:     input.Servings,
		PrepMinutes:  input.PrepMinutes,
		CookMinutes:  input.CookMinutes,
		Difficulty:   input.Difficulty,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		Nutrition:    input.Nutrition,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.userRecipes.Create(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("recipe.CreateCustom: %w", err)
	}

	s.log.InfoContext(ctx, "custom recipe created",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", created.ID.String()))

	return created, nil
}

// UpdateCustom overwrites a custom recipe's content. Favorites mirror
// catalog content and are not editable, which reads as ErrForbidden.
func (s *Service) UpdateCustom(ctx context.Context, userID, id uuid.UUID, input CustomRecipeInput) (*domain.UserRecipe, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRecipes.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("recipe.UpdateCustom get recipe: %w", err)
	}
	if !existing.IsCustom {
		return nil, fmt.Errorf("recipe.UpdateCustom: favorites are read-only: %w", domain.ErrForbidden)
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = input.Description
	existing.Cuisine = input.Cuisine
	existing.Servings = input.Servings
	existing.PrepMinutes = input.PrepMinutes
	existing.CookMinutes = input.CookMinutes
	existing.Difficulty = input.Difficulty
	existing.Ingredients = input.Ingredients
	existing.Instructions = input.Instructions
	existing.Nutrition = input.Nutrition

	updated, err := s.userRecipes.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("recipe.UpdateCustom: %w", err)
	}

	s.log.InfoContext(ctx, "custom recipe updated",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", id.String()))

	return updated, nil
}
