package domain

import (
	"time"

	"github.com/google/uuid"
)

// DifficultyLevels accepted on recipes. Empty means unrated.
var DifficultyLevels = []string{"easy", "medium", "hard"}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Nutrition holds per-serving nutrition facts.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Recipe is a canonical catalog recipe: shared reference data, read-only
// from the user's perspective.
type Recipe struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Cuisine      string
	Servings     int
	PrepMinutes  int
	CookMinutes  int
	Difficulty   string
	Ingredients  []Ingredient
	Instructions []string
	Nutrition    Nutrition
	CreatedAt    time.Time
}

// UserRecipe is either a favorite copied from the catalog
// (OriginalRecipeID set, IsCustom false) or a fully user-authored recipe
// (OriginalRecipeID nil, IsCustom true). At most one favorite row may exist
// per (user, original recipe) pair.
type UserRecipe struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	OriginalRecipeID *uuid.UUID
	IsCustom         bool
	Name             string
	Description      string
	Cuisine          string
	Servings         int
	PrepMinutes      int
	CookMinutes      int
	Difficulty       string
	Ingredients      []Ingredient
	Instructions     []string
	Nutrition        Nutrition
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsFavorite reports whether the row references a catalog recipe.
func (r *UserRecipe) IsFavorite() bool { return r.OriginalRecipeID != nil }

// Category is a user-scoped tag on user recipes.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

// RecipeFilter holds optional catalog search criteria. Zero values mean
// "no constraint".
type RecipeFilter struct {
	Query           string
	Cuisine         string
	Difficulty      string
	MaxTotalMinutes int
	Limit           int
	Offset          int
}

// FromCatalog copies catalog content into a new favorite UserRecipe for the
// given user. Content is mirrored at favorite time, so later catalog edits
// do not rewrite the user's copy.
func FromCatalog(userID uuid.UUID, r *Recipe) UserRecipe {
	return UserRecipe{
		UserID:           userID,
		OriginalRecipeID: &r.ID,
		IsCustom:         false,
		Name:             r.Name,
		Description:      r.Description,
		Cuisine:          r.Cuisine,
		Servings:         r.Servings,
		PrepMinutes:      r.PrepMinutes,
		CookMinutes:      r.CookMinutes,
		Difficulty:       r.Difficulty,
		Ingredients:      r.Ingredients,
		Instructions:     r.Instructions,
		Nutrition:        r.Nutrition,
	}
}
