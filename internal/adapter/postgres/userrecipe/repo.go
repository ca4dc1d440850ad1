// Package userrecipe implements the UserRecipe and Category repositories
// using PostgreSQL. User recipes cover both favorites (copied from the
// catalog) and fully user-authored custom recipes.
package userrecipe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/foodi-app/foodi-backend/internal/adapter/postgres"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Repo provides user recipe and category persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user recipe repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const userRecipeColumns = `id, user_id, original_recipe_id, is_custom, name,
description, cuisine, servings, prep_minutes, cook_minutes, difficulty,
ingredients, instructions, nutrition, created_at, updated_at`

const createSQL = `
INSERT INTO user_recipes (id, user_id, original_recipe_id, is_custom, name,
                          description, cuisine, servings, prep_minutes, cook_minutes,
                          difficulty, ingredients, instructions, nutrition)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + userRecipeColumns

const getByIDSQL = `
SELECT ` + userRecipeColumns + `
FROM user_recipes
WHERE id = $1 AND user_id = $2`

const listByUserSQL = `
SELECT ` + userRecipeColumns + `
FROM user_recipes
WHERE user_id = $1
ORDER BY created_at DESC`

const listCustomByUserSQL = `
SELECT ` + userRecipeColumns + `
FROM user_recipes
WHERE user_id = $1 AND is_custom
ORDER BY created_at DESC`

const updateSQL = `
UPDATE user_recipes
SET name = $3, description = $4, cuisine = $5, servings = $6, prep_minutes = $7,
    cook_minutes = $8, difficulty = $9, ingredients = $10, instructions = $11,
    nutrition = $12, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + userRecipeColumns

const deleteSQL = `
DELETE FROM user_recipes
WHERE id = $1 AND user_id = $2`

const deleteFavoriteSQL = `
DELETE FROM user_recipes
WHERE user_id = $1 AND original_recipe_id = $2`

const categoryColumns = `id, user_id, name, created_at`

const createCategorySQL = `
INSERT INTO categories (id, user_id, name)
VALUES ($1, $2, $3)
RETURNING ` + categoryColumns

const listCategoriesSQL = `
SELECT ` + categoryColumns + `
FROM categories
WHERE user_id = $1
ORDER BY name ASC`

const deleteCategorySQL = `
DELETE FROM categories
WHERE id = $1 AND user_id = $2`

const assignCategorySQL = `
INSERT INTO recipe_categories (user_recipe_id, category_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

const unassignCategorySQL = `
DELETE FROM recipe_categories
WHERE user_recipe_id = $1 AND category_id = $2`

const listCategoriesForRecipeSQL = `
SELECT c.id, c.user_id, c.name, c.created_at
FROM categories c
JOIN recipe_categories rc ON rc.category_id = c.id
WHERE rc.user_recipe_id = $1
ORDER BY c.name ASC`

// ---------------------------------------------------------------------------
// UserRecipe operations
// ---------------------------------------------------------------------------

// Create inserts a new user recipe (favorite or custom). A duplicate
// favorite for the same (user, original recipe) pair surfaces as
// domain.ErrAlreadyExists via the partial unique index.
func (r *Repo) Create(ctx context.Context, ur *domain.UserRecipe) (*domain.UserRecipe, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ingredients, instructions, nutrition, err := marshalContent(ur.Ingredients, ur.Instructions, ur.Nutrition)
	if err != nil {
		return nil, fmt.Errorf("marshal user recipe content: %w", err)
	}

	id := ur.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := querier.QueryRow(ctx, createSQL,
		id, ur.UserID, ur.OriginalRecipeID, ur.IsCustom, ur.Name,
		ur.Description, ur.Cuisine, ur.Servings, ur.PrepMinutes, ur.CookMinutes,
		ur.Difficulty, ingredients, instructions, nutrition,
	)

	created, err := scanUserRecipe(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_recipe", id)
	}
	return created, nil
}

// GetByID returns a user recipe by primary key filtered by owner.
// Returns domain.ErrNotFound if absent or owned by another user.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.UserRecipe, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ur, err := scanUserRecipe(querier.QueryRow(ctx, getByIDSQL, id, userID))
	if err != nil {
		return nil, postgres.MapError(err, "user_recipe", id)
	}
	return ur, nil
}

// ListByUser returns the user's recipes, newest first. When onlyCustom is
// true, favorites are excluded.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, onlyCustom bool) ([]*domain.UserRecipe, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query := listByUserSQL
	if onlyCustom {
		query = listCustomByUserSQL
	}

	rows, err := querier.Query(ctx, query, userID)
	if err != nil {
		return nil, postgres.MapError(err, "user_recipe", uuid.Nil)
	}
	defer rows.Close()

	var recipes []*domain.UserRecipe
	for rows.Next() {
		ur, err := scanUserRecipe(rows)
		if err != nil {
			return nil, postgres.MapError(err, "user_recipe", uuid.Nil)
		}
		recipes = append(recipes, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user_recipe", uuid.Nil)
	}

	return recipes, nil
}

// Update rewrites the content columns of a user recipe owned by the user.
func (r *Repo) Update(ctx context.Context, ur *domain.UserRecipe) (*domain.UserRecipe, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ingredients, instructions, nutrition, err := marshalContent(ur.Ingredients, ur.Instructions, ur.Nutrition)
	if err != nil {
		return nil, fmt.Errorf("marshal user recipe content: %w", err)
	}

	row := querier.QueryRow(ctx, updateSQL,
		ur.ID, ur.UserID, ur.Name, ur.Description, ur.Cuisine, ur.Servings,
		ur.PrepMinutes, ur.CookMinutes, ur.Difficulty,
		ingredients, instructions, nutrition,
	)

	updated, err := scanUserRecipe(row)
	if err != nil {
		return nil, postgres.MapError(err, "user_recipe", ur.ID)
	}
	return updated, nil
}

// Delete removes a user recipe owned by the user. Category assignments
// cascade at the DB level. Returns domain.ErrNotFound if nothing matched.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "user_recipe", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user_recipe", id)
	}
	return nil
}

// DeleteFavorite removes the favorite row referencing the given catalog
// recipe. Returns domain.ErrNotFound if the user never favorited it.
func (r *Repo) DeleteFavorite(ctx context.Context, userID, originalRecipeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteFavoriteSQL, userID, originalRecipeID)
	if err != nil {
		return postgres.MapError(err, "user_recipe", originalRecipeID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user_recipe", originalRecipeID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Category operations
// ---------------------------------------------------------------------------

// CreateCategory inserts a user-scoped category. Duplicate names for the
// same user surface as domain.ErrAlreadyExists.
func (r *Repo) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var created domain.Category
	err := querier.QueryRow(ctx, createCategorySQL, id, c.UserID, c.Name).
		Scan(&created.ID, &created.UserID, &created.Name, &created.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "category", id)
	}
	return &created, nil
}

// ListCategories returns the user's categories ordered by name.
func (r *Repo) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listCategoriesSQL, userID)
	if err != nil {
		return nil, postgres.MapError(err, "category", uuid.Nil)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, postgres.MapError(err, "category", uuid.Nil)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "category", uuid.Nil)
	}

	return categories, nil
}

// DeleteCategory removes a category owned by the user; its assignments
// cascade, the tagged recipes stay.
func (r *Repo) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteCategorySQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "category", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "category", id)
	}
	return nil
}

// AssignCategory tags a user recipe with a category. Idempotent.
func (r *Repo) AssignCategory(ctx context.Context, userRecipeID, categoryID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, assignCategorySQL, userRecipeID, categoryID); err != nil {
		return postgres.MapError(err, "recipe_category", userRecipeID)
	}
	return nil
}

// UnassignCategory removes a tag from a user recipe.
func (r *Repo) UnassignCategory(ctx context.Context, userRecipeID, categoryID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, unassignCategorySQL, userRecipeID, categoryID); err != nil {
		return postgres.MapError(err, "recipe_category", userRecipeID)
	}
	return nil
}

// ListCategoriesForRecipe returns the categories assigned to a user recipe.
func (r *Repo) ListCategoriesForRecipe(ctx context.Context, userRecipeID uuid.UUID) ([]*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listCategoriesForRecipeSQL, userRecipeID)
	if err != nil {
		return nil, postgres.MapError(err, "recipe_category", userRecipeID)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, postgres.MapError(err, "recipe_category", userRecipeID)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "recipe_category", userRecipeID)
	}

	return categories, nil
}

// ---------------------------------------------------------------------------
// Scanning and JSONB mapping
// ---------------------------------------------------------------------------

func marshalContent(ingredients []domain.Ingredient, instructions []string, nutrition domain.Nutrition) ([]byte, []byte, []byte, error) {
	ing, err := json.Marshal(ingredients)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ingredients: %w", err)
	}
	ins, err := json.Marshal(instructions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("instructions: %w", err)
	}
	nut, err := json.Marshal(nutrition)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("nutrition: %w", err)
	}
	return ing, ins, nut, nil
}

func scanUserRecipe(row pgx.Row) (*domain.UserRecipe, error) {
	var (
		ur           domain.UserRecipe
		ingredients  []byte
		instructions []byte
		nutrition    []byte
	)

	err := row.Scan(
		&ur.ID, &ur.UserID, &ur.OriginalRecipeID, &ur.IsCustom, &ur.Name,
		&ur.Description, &ur.Cuisine, &ur.Servings, &ur.PrepMinutes, &ur.CookMinutes,
		&ur.Difficulty, &ingredients, &instructions, &nutrition,
		&ur.CreatedAt, &ur.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(ingredients, &ur.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshal ingredients: %w", err)
	}
	if err := json.Unmarshal(instructions, &ur.Instructions); err != nil {
		return nil, fmt.Errorf("unmarshal instructions: %w", err)
	}
	if err := json.Unmarshal(nutrition, &ur.Nutrition); err != nil {
		return nil, fmt.Errorf("unmarshal nutrition: %w", err)
	}

	return &ur, nil
}
