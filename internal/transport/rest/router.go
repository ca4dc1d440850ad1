package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/config"
	"github.com/foodi-app/foodi-backend/internal/transport/middleware"
)

// tokenValidator validates an access token and returns the user it belongs to.
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Handlers bundles the REST handlers the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Recipe  *RecipeHandler
	Pantry  *PantryHandler
	Health  *HealthHandler
}

// NewRouter builds the full HTTP handler: all API routes under /api/v1,
// health probes at /health, wrapped in the shared middleware chain.
// Registration and login carry tighter rate limits than the rest of the API.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	validator tokenValidator,
	limiter *middleware.RateLimiter,
	h Handlers,
) http.Handler {
	mux := http.NewServeMux()

	// Health probes bypass rate limiting and auth.
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	registerLimit := limiter.Limit(cfg.RateLimit.RegisterPerMinute)
	loginLimit := limiter.Limit(cfg.RateLimit.LoginPerMinute)
	defaultLimit := limiter.Limit(cfg.RateLimit.DefaultPerMinute)

	handle := func(pattern string, limit middleware.Middleware, fn http.HandlerFunc) {
		mux.Handle(pattern, limit(fn))
	}

	handle("POST /api/v1/users/register", registerLimit, h.Auth.Register)
	handle("POST /api/v1/users/login", loginLimit, h.Auth.Login)
	handle("POST /api/v1/users/social-login", loginLimit, h.Auth.SocialLogin)
	handle("POST /api/v1/users/verify-email", defaultLimit, h.Auth.VerifyEmail)
	handle("POST /api/v1/users/resend-verification", defaultLimit, h.Auth.ResendVerification)
	handle("POST /api/v1/users/refresh", defaultLimit, h.Auth.Refresh)
	handle("POST /api/v1/users/logout", defaultLimit, h.Auth.Logout)

	handle("GET /api/v1/users/profile", defaultLimit, h.Profile.Get)
	handle("PUT /api/v1/users/profile", defaultLimit, h.Profile.UpdatePersonal)
	handle("PUT /api/v1/users/profile/section", defaultLimit, h.Profile.UpdateSection)
	handle("GET /api/v1/users/profile/history", defaultLimit, h.Profile.History)

	handle("GET /api/v1/recipes", defaultLimit, h.Recipe.Search)
	handle("GET /api/v1/recipes/{id}", defaultLimit, h.Recipe.GetCatalog)

	handle("GET /api/v1/users/recipes", defaultLimit, h.Recipe.ListUserRecipes)
	handle("POST /api/v1/users/recipes", defaultLimit, h.Recipe.CreateCustom)
	handle("GET /api/v1/users/recipes/{id}", defaultLimit, h.Recipe.GetUserRecipe)
	handle("PUT /api/v1/users/recipes/{id}", defaultLimit, h.Recipe.UpdateCustom)
	handle("DELETE /api/v1/users/recipes/{id}", defaultLimit, h.Recipe.DeleteUserRecipe)
	handle("POST /api/v1/users/recipes/{id}/favorite", defaultLimit, h.Recipe.Favorite)
	handle("DELETE /api/v1/users/recipes/{id}/favorite", defaultLimit, h.Recipe.Unfavorite)
	handle("GET /api/v1/users/recipes/{id}/categories", defaultLimit, h.Recipe.ListRecipeCategories)
	handle("POST /api/v1/users/recipes/{id}/categories/{categoryID}", defaultLimit, h.Recipe.AssignCategory)
	handle("DELETE /api/v1/users/recipes/{id}/categories/{categoryID}", defaultLimit, h.Recipe.UnassignCategory)

	handle("GET /api/v1/categories", defaultLimit, h.Recipe.ListCategories)
	handle("POST /api/v1/categories", defaultLimit, h.Recipe.CreateCategory)
	handle("DELETE /api/v1/categories/{id}", defaultLimit, h.Recipe.DeleteCategory)

	handle("POST /api/v1/pantry", defaultLimit, h.Pantry.Add)
	handle("GET /api/v1/pantry", defaultLimit, h.Pantry.List)
	handle("GET /api/v1/pantry/stats", defaultLimit, h.Pantry.Stats)
	handle("GET /api/v1/pantry/expiring", defaultLimit, h.Pantry.Expiring)
	handle("POST /api/v1/pantry/cleanup", defaultLimit, h.Pantry.Cleanup)
	handle("GET /api/v1/pantry/{id}", defaultLimit, h.Pantry.Get)
	handle("PUT /api/v1/pantry/{id}", defaultLimit, h.Pantry.Update)
	handle("DELETE /api/v1/pantry/{id}", defaultLimit, h.Pantry.Remove)

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(validator),
	)(mux)
}
