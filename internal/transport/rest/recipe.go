package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
	"github.com/foodi-app/foodi-backend/internal/service/recipe"
	"github.com/foodi-app/foodi-backend/pkg/ctxutil"
)

// recipeService defines the minimal interface needed by RecipeHandler.
type recipeService interface {
	Search(ctx context.Context, filter domain.RecipeFilter) (*recipe.SearchResult, error)
	GetCatalogRecipe(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	Favorite(ctx context.Context, userID, recipeID uuid.UUID) (*domain.UserRecipe, error)
	Unfavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	ListUserRecipes(ctx context.Context, userID uuid.UUID, onlyCustom bool) ([]*domain.UserRecipe, error)
	GetUserRecipe(ctx context.Context, userID, id uuid.UUID) (*domain.UserRecipe, error)
	DeleteUserRecipe(ctx context.Context, userID, id uuid.UUID) error
	CreateCustom(ctx context.Context, userID uuid.UUID, input recipe.CustomRecipeInput) (*domain.UserRecipe, error)
	UpdateCustom(ctx context.Context, userID, id uuid.UUID, input recipe.CustomRecipeInput) (*domain.UserRecipe, error)
	CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
	AssignCategory(ctx context.Context, userID, recipeID, categoryID uuid.UUID) error
	UnassignCategory(ctx context.Context, userID, recipeID, categoryID uuid.UUID) error
	ListRecipeCategories(ctx context.Context, userID, recipeID uuid.UUID) ([]*domain.Category, error)
}

// RecipeHandler serves the catalog, favorites, custom recipes and categories.
type RecipeHandler struct {
	svc recipeService
	log *slog.Logger
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(svc recipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, log: logger.With("handler", "recipe")}
}

type recipeResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description,omitempty"`
	Cuisine      string              `json:"cuisine,omitempty"`
	Servings     int                 `json:"servings"`
	PrepMinutes  int                 `json:"prep_minutes"`
	CookMinutes  int                 `json:"cook_minutes"`
	Difficulty   string              `json:"difficulty,omitempty"`
	Ingredients  []domain.Ingredient `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	Nutrition    domain.Nutrition    `json:"nutrition"`
	CreatedAt    time.Time           `json:"created_at"`
}

type userRecipeResponse struct {
	recipeResponse
	OriginalRecipeID *string   `json:"original_recipe_id,omitempty"`
	IsCustom         bool      `json:"is_custom"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type searchResponse struct {
	Recipes []recipeResponse `json:"recipes"`
	Total   int              `json:"total"`
}

type customRecipeRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Cuisine      string              `json:"cuisine"`
	Servings     int                 `json:"servings"`
	PrepMinutes  int                 `json:"prep_minutes"`
	CookMinutes  int                 `json:"cook_minutes"`
	Difficulty   string              `json:"difficulty"`
	Ingredients  []domain.Ingredient `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	Nutrition    domain.Nutrition    `json:"nutrition"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	return recipeResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		Description:  r.Description,
		Cuisine:      r.Cuisine,
		Servings:     r.Servings,
		PrepMinutes:  r.PrepMinutes,
		CookMinutes:  r.CookMinutes,
		Difficulty:   r.Difficulty,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Nutrition:    r.Nutrition,
		CreatedAt:    r.CreatedAt,
	}
}

func toUserRecipeResponse(r *domain.UserRecipe) userRecipeResponse {
	out := userRecipeResponse{
		recipeResponse: recipeResponse{
			ID:           r.ID.String(),
			Name:         r.Name,
			Description:  r.Description,
			Cuisine:      r.Cuisine,
			Servings:     r.Servings,
			PrepMinutes:  r.PrepMinutes,
			CookMinutes:  r.CookMinutes,
			Difficulty:   r.Difficulty,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
			Nutrition:    r.Nutrition,
			CreatedAt:    r.CreatedAt,
		},
		IsCustom:  r.IsCustom,
		UpdatedAt: r.UpdatedAt,
	}
	if r.OriginalRecipeID != nil {
		id := r.OriginalRecipeID.String()
		out.OriginalRecipeID = &id
	}
	return out
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID.String(), Name: c.Name, CreatedAt: c.CreatedAt}
}

func toCustomInput(req customRecipeRequest) recipe.CustomRecipeInput {
	return recipe.CustomRecipeInput{
		Name:         req.Name,
		Description:  req.Description,
		Cuisine:      req.Cuisine,
		Servings:     req.Servings,
		PrepMinutes:  req.PrepMinutes,
		CookMinutes:  req.CookMinutes,
		Difficulty:   req.Difficulty,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Nutrition:    req.Nutrition,
	}
}

// requireUser extracts the authenticated user or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthenticationError", "authentication required", nil)
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses the named path value or writes a 400.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", name+" must be a valid uuid", nil)
		return uuid.Nil, false
	}
	return id, true
}

// Search handles GET /api/v1/recipes.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RecipeFilter{
		Query:      q.Get("q"),
		Cuisine:    q.Get("cuisine"),
		Difficulty: q.Get("difficulty"),
	}
	for name, dst := range map[string]*int{
		"max_total_minutes": &filter.MaxTotalMinutes,
		"limit":             &filter.Limit,
		"offset":            &filter.Offset,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "ValidationError", name+" must be an integer", nil)
			return
		}
		*dst = parsed
	}

	res, err := h.svc.Search(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := searchResponse{Recipes: make([]recipeResponse, 0, len(res.Recipes)), Total: res.Total}
	for _, rec := range res.Recipes {
		out.Recipes = append(out.Recipes, toRecipeResponse(rec))
	}
	writeSuccess(w, http.StatusOK, out)
}

// GetCatalog handles GET /api/v1/recipes/{id}.
func (h *RecipeHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.svc.GetCatalogRecipe(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, toRecipeResponse(rec))
}

// ListUserRecipes handles GET /api/v1/users/recipes. ?custom=true narrows
// the list to user-authored recipes.
func (h *RecipeHandler) ListUserRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	onlyCustom := r.URL.Query().Get("custom") == "true"
	recipes, err := h.svc.ListUserRecipes(r.Context(), userID, onlyCustom)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]userRecipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		out = append(out, toUserRecipeResponse(rec))
	}
	writeSuccess(w, http.StatusOK, out)
}

// GetUserRecipe handles GET /api/v1/users/recipes/{id}.
func (h *RecipeHandler) GetUserRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.svc.GetUserRecipe(r.Context(), userID, id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, toUserRecipeResponse(rec))
}

// CreateCustom handles POST /api/v1/users/recipes.
func (h *RecipeHandler) CreateCustom(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req customRecipeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.svc.CreateCustom(r.Context(), userID, toCustomInput(req))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusCreated, toUserRecipeResponse(rec))
}

// UpdateCustom handles PUT /api/v1/users/recipes/{id}.
func (h *RecipeHandler) UpdateCustom(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req customRecipeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.svc.UpdateCustom(r.Context(), userID, id, toCustomInput(req))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, toUserRecipeResponse(rec))
}

// DeleteUserRecipe handles DELETE /api/v1/users/recipes/{id}.
func (h *RecipeHandler) DeleteUserRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteUserRecipe(r.Context(), userID, id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

// Favorite handles POST /api/v1/users/recipes/{id}/favorite. The id is the
// catalog recipe id.
func (h *RecipeHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.svc.Favorite(r.Context(), userID, recipeID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusCreated, toUserRecipeResponse(rec))
}

// Unfavorite handles DELETE /api/v1/users/recipes/{id}/favorite.
func (h *RecipeHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Unfavorite(r.Context(), userID, recipeID); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

// CreateCategory handles POST /api/v1/categories.
func (h *RecipeHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cat, err := h.svc.CreateCategory(r.Context(), userID, req.Name)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusCreated, toCategoryResponse(cat))
}

// ListCategories handles GET /api/v1/categories.
func (h *RecipeHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cats, err := h.svc.ListCategories(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	writeSuccess(w, http.StatusOK, out)
}

// DeleteCategory handles DELETE /api/v1/categories/{id}.
func (h *RecipeHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), userID, id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

// AssignCategory handles POST /api/v1/users/recipes/{id}/categories/{categoryID}.
func (h *RecipeHandler) AssignCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	categoryID, ok := pathUUID(w, r, "categoryID")
	if !ok {
		return
	}

	if err := h.svc.AssignCategory(r.Context(), userID, recipeID, categoryID); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"assigned": true})
}

// UnassignCategory handles DELETE /api/v1/users/recipes/{id}/categories/{categoryID}.
func (h *RecipeHandler) UnassignCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	categoryID, ok := pathUUID(w, r, "categoryID")
	if !ok {
		return
	}

	if err := h.svc.UnassignCategory(r.Context(), userID, recipeID, categoryID); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"removed": true})
}

// ListRecipeCategories handles GET /api/v1/users/recipes/{id}/categories.
func (h *RecipeHandler) ListRecipeCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	cats, err := h.svc.ListRecipeCategories(r.Context(), userID, recipeID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	writeSuccess(w, http.StatusOK, out)
}
