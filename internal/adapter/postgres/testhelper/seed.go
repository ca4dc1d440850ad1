package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active password user. Returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	hash := "$2a$04$seedhashseedhashseedhasu9eFqLZW1BzVWyyyy1uM0XW4mJ9WDK"
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Username:     "testuser-" + suffix,
		PasswordHash: &hash,
		FirstName:    "Test",
		LastName:     "User " + suffix,
		Provider:     domain.AuthProviderPassword,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, first_name, last_name, auth_provider, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.Username, user.PasswordHash, user.FirstName, user.LastName,
		string(user.Provider), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedRecipe creates a catalog recipe with two ingredients and two
// instruction steps. Returns the filled domain.Recipe.
func SeedRecipe(t *testing.T, pool *pgxpool.Pool, name string) domain.Recipe {
	t.Helper()
	ctx := context.Background()

	recipe := domain.Recipe{
		ID:          uuid.New(),
		Name:        name,
		Description: "seeded recipe",
		Cuisine:     "italian",
		Servings:    2,
		PrepMinutes: 10,
		CookMinutes: 20,
		Difficulty:  "easy",
		Ingredients: []domain.Ingredient{
			{Name: "spaghetti", Quantity: 200, Unit: "g"},
			{Name: "tomato", Quantity: 3, Unit: "pcs"},
		},
		Instructions: []string{"boil pasta", "add sauce"},
		Nutrition:    domain.Nutrition{Calories: 450, Protein: 14, Carbs: 80, Fat: 6},
	}

	ingredients, _ := json.Marshal(recipe.Ingredients)
	instructions, _ := json.Marshal(recipe.Instructions)
	nutrition, _ := json.Marshal(recipe.Nutrition)

	_, err := pool.Exec(ctx,
		`INSERT INTO recipes (id, name, description, cuisine, servings, prep_minutes, cook_minutes, difficulty, ingredients, instructions, nutrition)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		recipe.ID, recipe.Name, recipe.Description, recipe.Cuisine, recipe.Servings,
		recipe.PrepMinutes, recipe.CookMinutes, recipe.Difficulty,
		ingredients, instructions, nutrition,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRecipe insert: %v", err)
	}

	return recipe
}

// SeedPantryItem creates a pantry item for the user with the given expiry.
func SeedPantryItem(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, name string, expiresAt *time.Time) domain.PantryItem {
	t.Helper()
	ctx := context.Background()

	item := domain.PantryItem{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Quantity:  1,
		Unit:      "pcs",
		Category:  "produce",
		ExpiresAt: expiresAt,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO pantry_items (id, user_id, name, quantity, unit, category, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.UserID, item.Name, item.Quantity, item.Unit, item.Category, item.ExpiresAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPantryItem insert: %v", err)
	}

	return item
}
