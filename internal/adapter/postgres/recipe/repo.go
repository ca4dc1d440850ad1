// Package recipe implements the catalog Recipe repository using PostgreSQL.
// Ingredient, instruction, and nutrition columns are JSONB with custom
// marshal/unmarshal logic; the search query is built dynamically with
// squirrel.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/foodi-app/foodi-backend/internal/adapter/postgres"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Repo provides catalog recipe persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// New creates a new catalog recipe repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const recipeColumns = `id, name, description, cuisine, servings, prep_minutes,
cook_minutes, difficulty, ingredients, instructions, nutrition, created_at`

const getByIDSQL = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE id = $1`

const createSQL = `
INSERT INTO recipes (id, name, description, cuisine, servings, prep_minutes,
                     cook_minutes, difficulty, ingredients, instructions, nutrition)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + recipeColumns

// GetByID returns a catalog recipe by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	recipe, err := scanRecipe(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "recipe", id)
	}
	return recipe, nil
}

// Search returns catalog recipes matching the filter, plus the total count
// ignoring pagination. Filter criteria combine with AND; zero values are
// skipped.
func (r *Repo) Search(ctx context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	base := r.sb.Select().From("recipes")
	if filter.Query != "" {
		base = base.Where(sq.ILike{"name": "%" + filter.Query + "%"})
	}
	if filter.Cuisine != "" {
		base = base.Where(sq.Eq{"cuisine": filter.Cuisine})
	}
	if filter.Difficulty != "" {
		base = base.Where(sq.Eq{"difficulty": filter.Difficulty})
	}
	if filter.MaxTotalMinutes > 0 {
		base = base.Where(sq.LtOrEq{"prep_minutes + cook_minutes": filter.MaxTotalMinutes})
	}

	countSQL, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "recipe", uuid.Nil)
	}

	page := base.Columns(recipeColumns).OrderBy("name ASC", "id ASC")
	if filter.Limit > 0 {
		page = page.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		page = page.Offset(uint64(filter.Offset))
	}

	pageSQL, pageArgs, err := page.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build search query: %w", err)
	}

	rows, err := querier.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "recipe", uuid.Nil)
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, postgres.MapError(err, "recipe", uuid.Nil)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "recipe", uuid.Nil)
	}

	return recipes, total, nil
}

// Create inserts a new catalog recipe. Used by seeding, not by user flows.
func (r *Repo) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ingredients, instructions, nutrition, err := marshalContent(recipe.Ingredients, recipe.Instructions, recipe.Nutrition)
	if err != nil {
		return nil, fmt.Errorf("marshal recipe content: %w", err)
	}

	id := recipe.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := querier.QueryRow(ctx, createSQL,
		id, recipe.Name, recipe.Description, recipe.Cuisine, recipe.Servings,
		recipe.PrepMinutes, recipe.CookMinutes, recipe.Difficulty,
		ingredients, instructions, nutrition,
	)

	created, err := scanRecipe(row)
	if err != nil {
		return nil, postgres.MapError(err, "recipe", id)
	}
	return created, nil
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

func scanRecipe(row pgx.Row) (*domain.Recipe, error) {
	var (
		recipe       domain.Recipe
		ingredients  []byte
		instructions []byte
		nutrition    []byte
	)

	err := row.Scan(
		&recipe.ID, &recipe.Name, &recipe.Description, &recipe.Cuisine,
		&recipe.Servings, &recipe.PrepMinutes, &recipe.CookMinutes, &recipe.Difficulty,
		&ingredients, &instructions, &nutrition, &recipe.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshal ingredients: %w", err)
	}
	if err := json.Unmarshal(instructions, &recipe.Instructions); err != nil {
		return nil, fmt.Errorf("unmarshal instructions: %w", err)
	}
	if err := json.Unmarshal(nutrition, &recipe.Nutrition); err != nil {
		return nil, fmt.Errorf("unmarshal nutrition: %w", err)
	}

	return &recipe, nil
}
