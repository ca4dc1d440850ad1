package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
	"github.com/foodi-app/foodi-backend/internal/service/auth"
	"github.com/foodi-app/foodi-backend/internal/service/pantry"
	"github.com/foodi-app/foodi-backend/internal/service/profile"
	"github.com/foodi-app/foodi-backend/internal/service/recipe"
)

// Hand-rolled service mocks. Methods without a Func set panic, so a test
// failing with a nil-map panic points straight at the missing stub.

type authServiceMock struct {
	RegisterFunc           func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginFunc              func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	SocialLoginFunc        func(ctx context.Context, input auth.SocialLoginInput) (*auth.AuthResult, error)
	VerifyEmailFunc        func(ctx context.Context, input auth.VerifyEmailInput) error
	ResendVerificationFunc func(ctx context.Context, userID uuid.UUID) error
	RefreshFunc            func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	LogoutFunc             func(ctx context.Context) error
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) SocialLogin(ctx context.Context, input auth.SocialLoginInput) (*auth.AuthResult, error) {
	return m.SocialLoginFunc(ctx, input)
}

func (m *authServiceMock) VerifyEmail(ctx context.Context, input auth.VerifyEmailInput) error {
	return m.VerifyEmailFunc(ctx, input)
}

func (m *authServiceMock) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	return m.ResendVerificationFunc(ctx, userID)
}

func (m *authServiceMock) Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
	return m.RefreshFunc(ctx, input)
}

func (m *authServiceMock) Logout(ctx context.Context) error {
	return m.LogoutFunc(ctx)
}

type profileServiceMock struct {
	GetProfileFunc    func(ctx context.Context, userID uuid.UUID) (*profile.ProfileResult, error)
	UpdateSectionFunc func(ctx context.Context, userID uuid.UUID, input profile.UpdateSectionInput) (*profile.ProfileResult, error)
	HistoryFunc       func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ProfileChangeRecord, error)
}

func (m *profileServiceMock) GetProfile(ctx context.Context, userID uuid.UUID) (*profile.ProfileResult, error) {
	return m.GetProfileFunc(ctx, userID)
}

func (m *profileServiceMock) UpdateSection(ctx context.Context, userID uuid.UUID, input profile.UpdateSectionInput) (*profile.ProfileResult, error) {
	return m.UpdateSectionFunc(ctx, userID, input)
}

func (m *profileServiceMock) History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ProfileChangeRecord, error) {
	return m.HistoryFunc(ctx, userID, limit)
}

type recipeServiceMock struct {
	SearchFunc               func(ctx context.Context, filter domain.RecipeFilter) (*recipe.SearchResult, error)
	GetCatalogRecipeFunc     func(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	FavoriteFunc             func(ctx context.Context, userID, recipeID uuid.UUID) (*domain.UserRecipe, error)
	UnfavoriteFunc           func(ctx context.Context, userID, recipeID uuid.UUID) error
	ListUserRecipesFunc      func(ctx context.Context, userID uuid.UUID, onlyCustom bool) ([]*domain.UserRecipe, error)
	GetUserRecipeFunc        func(ctx context.Context, userID, id uuid.UUID) (*domain.UserRecipe, error)
	DeleteUserRecipeFunc     func(ctx context.Context, userID, id uuid.UUID) error
	CreateCustomFunc         func(ctx context.Context, userID uuid.UUID, input recipe.CustomRecipeInput) (*domain.UserRecipe, error)
	UpdateCustomFunc         func(ctx context.Context, userID, id uuid.UUID, input recipe.CustomRecipeInput) (*domain.UserRecipe, error)
	CreateCategoryFunc       func(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error)
	ListCategoriesFunc       func(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	DeleteCategoryFunc       func(ctx context.Context, userID, id uuid.UUID) error
	AssignCategoryFunc       func(ctx context.Context, userID, recipeID, categoryID uuid.UUID) error
	UnassignCategoryFunc     func(ctx context.Context, userID, recipeID, categoryID uuid.UUID) error
	ListRecipeCategoriesFunc func(ctx context.Context, userID, recipeID uuid.UUID) ([]*domain.Category, error)
}

func (m *recipeServiceMock) Search(ctx context.Context, filter domain.RecipeFilter) (*recipe.SearchResult, error) {
	return m.SearchFunc(ctx, filter)
}

func (m *recipeServiceMock) GetCatalogRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	return m.GetCatalogRecipeFunc(ctx, id)
}

func (m *recipeServiceMock) Favorite(ctx context.Context, userID, recipeID uuid.UUID) (*domain.UserRecipe, error) {
	return m.FavoriteFunc(ctx, userID, recipeID)
}

func (m *recipeServiceMock) Unfavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.UnfavoriteFunc(ctx, userID, recipeID)
}

func (m *recipeServiceMock) ListUserRecipes(ctx context.Context, userID uuid.UUID, onlyCustom bool) ([]*domain.UserRecipe, error) {
	return m.ListUserRecipesFunc(ctx, userID, onlyCustom)
}

func (m *recipeServiceMock) GetUserRecipe(ctx context.Context, userID, id uuid.UUID) (*domain.UserRecipe, error) {
	return m.GetUserRecipeFunc(ctx, userID, id)
}

func (m *recipeServiceMock) DeleteUserRecipe(ctx context.Context, userID, id uuid.UUID) error {
	return m.DeleteUserRecipeFunc(ctx, userID, id)
}

func (m *recipeServiceMock) CreateCustom(ctx context.Context, userID uuid.UUID, input recipe.CustomRecipeInput) (*domain.UserRecipe, error) {
	return m.CreateCustomFunc(ctx, userID, input)
}

func (m *recipeServiceMock) UpdateCustom(ctx context.Context, userID, id uuid.UUID, input recipe.CustomRecipeInput) (*domain.UserRecipe, error) {
	return m.UpdateCustomFunc(ctx, userID, id, input)
}

func (m *recipeServiceMock) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error) {
	return m.CreateCategoryFunc(ctx, userID, name)
}

func (m *recipeServiceMock) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return m.ListCategoriesFunc(ctx, userID)
}

func (m *recipeServiceMock) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	return m.DeleteCategoryFunc(ctx, userID, id)
}

func (m *recipeServiceMock) AssignCategory(ctx context.Context, userID, recipeID, categoryID uuid.UUID) error {
	return m.AssignCategoryFunc(ctx, userID, recipeID, categoryID)
}

func (m *recipeServiceMock) UnassignCategory(ctx context.Context, userID, recipeID, categoryID uuid.UUID) error {
	return m.UnassignCategoryFunc(ctx, userID, recipeID, categoryID)
}

func (m *recipeServiceMock) ListRecipeCategories(ctx context.Context, userID, recipeID uuid.UUID) ([]*domain.Category, error) {
	return m.ListRecipeCategoriesFunc(ctx, userID, recipeID)
}

type pantryServiceMock struct {
	AddFunc      func(ctx context.Context, userID uuid.UUID, input pantry.ItemInput) (*domain.PantryItem, error)
	GetFunc      func(ctx context.Context, userID, id uuid.UUID) (*domain.PantryItem, error)
	ListFunc     func(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error)
	UpdateFunc   func(ctx context.Context, userID, id uuid.UUID, input pantry.ItemInput) (*domain.PantryItem, error)
	RemoveFunc   func(ctx context.Context, userID, id uuid.UUID) error
	ExpiringFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error)
	CleanupFunc  func(ctx context.Context, userID uuid.UUID) (int, error)
	StatsFunc    func(ctx context.Context, userID uuid.UUID) (*domain.PantryStats, error)
}

func (m *pantryServiceMock) Add(ctx context.Context, userID uuid.UUID, input pantry.ItemInput) (*domain.PantryItem, error) {
	return m.AddFunc(ctx, userID, input)
}

func (m *pantryServiceMock) Get(ctx context.Context, userID, id uuid.UUID) (*domain.PantryItem, error) {
	return m.GetFunc(ctx, userID, id)
}

func (m *pantryServiceMock) List(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error) {
	return m.ListFunc(ctx, userID)
}

func (m *pantryServiceMock) Update(ctx context.Context, userID, id uuid.UUID, input pantry.ItemInput) (*domain.PantryItem, error) {
	return m.UpdateFunc(ctx, userID, id, input)
}

func (m *pantryServiceMock) Remove(ctx context.Context, userID, id uuid.UUID) error {
	return m.RemoveFunc(ctx, userID, id)
}

func (m *pantryServiceMock) Expiring(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error) {
	return m.ExpiringFunc(ctx, userID)
}

func (m *pantryServiceMock) Cleanup(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.CleanupFunc(ctx, userID)
}

func (m *pantryServiceMock) Stats(ctx context.Context, userID uuid.UUID) (*domain.PantryStats, error) {
	return m.StatsFunc(ctx, userID)
}
