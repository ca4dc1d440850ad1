package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/config"
	"github.com/foodi-app/foodi-backend/internal/domain"
	"github.com/foodi-app/foodi-backend/internal/service/auth"
	"github.com/foodi-app/foodi-backend/internal/service/profile"
	"github.com/foodi-app/foodi-backend/internal/transport/middleware"
)

type validatorMock struct {
	userID uuid.UUID
	err    error
}

func (m *validatorMock) ValidateToken(_ context.Context, _ string) (uuid.UUID, error) {
	return m.userID, m.err
}

func testRouter(t *testing.T, cfg *config.Config, validator tokenValidator, h Handlers) *httptest.Server {
	t.Helper()

	if h.Auth == nil {
		h.Auth = NewAuthHandler(&authServiceMock{}, testLogger())
	}
	if h.Profile == nil {
		h.Profile = NewProfileHandler(&profileServiceMock{}, testLogger())
	}
	if h.Recipe == nil {
		h.Recipe = NewRecipeHandler(&recipeServiceMock{}, testLogger())
	}
	if h.Pantry == nil {
		h.Pantry = NewPantryHandler(&pantryServiceMock{}, testLogger())
	}
	if h.Health == nil {
		h.Health = NewHealthHandler(&pingerMock{}, &pingerMock{}, "test-version")
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(NewRouter(cfg, testLogger(), validator, limiter, h))
	t.Cleanup(srv.Close)
	return srv
}

func defaultRouterConfig() *config.Config {
	return &config.Config{
		RateLimit: config.RateLimitConfig{
			RegisterPerMinute: 100,
			LoginPerMinute:    100,
			DefaultPerMinute:  100,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	}
}

func TestRouter_HealthNeedsNoAuth(t *testing.T) {
	srv := testRouter(t, defaultRouterConfig(), &validatorMock{err: domain.ErrUnauthorized}, Handlers{})

	resp, err := srv.Client().Get(srv.URL + "/health/live")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := testRouter(t, defaultRouterConfig(), &validatorMock{}, Handlers{})

	resp, err := srv.Client().Post(srv.URL+"/api/v1/recipes", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", resp.StatusCode)
	}
}

func TestRouter_AuthenticatedRequestReachesHandler(t *testing.T) {
	userID := uuid.New()
	profileSvc := &profileServiceMock{
		GetProfileFunc: func(_ context.Context, id uuid.UUID) (*profile.ProfileResult, error) {
			if id != userID {
				t.Errorf("expected user %s from token, got %s", userID, id)
			}
			return &profile.ProfileResult{
				Profile: domain.Profile{User: domain.User{ID: id, Email: "cook@example.com"}},
			}, nil
		},
	}
	srv := testRouter(t, defaultRouterConfig(), &validatorMock{userID: userID}, Handlers{
		Profile: NewProfileHandler(profileSvc, testLogger()),
	})

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/users/profile", nil)
	req.Header.Set("Authorization", "Bearer token123")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestRouter_MissingTokenIs401(t *testing.T) {
	srv := testRouter(t, defaultRouterConfig(), &validatorMock{userID: uuid.New()}, Handlers{})

	resp, err := srv.Client().Get(srv.URL + "/api/v1/users/profile")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
}

func TestRouter_RegisterRateLimit(t *testing.T) {
	cfg := defaultRouterConfig()
	cfg.RateLimit.RegisterPerMinute = 1

	authSvc := &authServiceMock{
		RegisterFunc: func(_ context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
			return testAuthResult(input.Email), nil
		},
	}
	srv := testRouter(t, cfg, &validatorMock{}, Handlers{
		Auth: NewAuthHandler(authSvc, testLogger()),
	})

	body := `{"email":"cook@example.com","username":"cook","password":"Sup3rsecret"}`

	first, err := srv.Client().Post(srv.URL+"/api/v1/users/register", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	first.Body.Close()
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("expected first request 201, got %d", first.StatusCode)
	}

	second, err := srv.Client().Post(srv.URL+"/api/v1/users/register", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	defer second.Body.Close()
	if second.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected second request 429, got %d", second.StatusCode)
	}
	if second.Header.Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	var env envelope
	if err := json.NewDecoder(second.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	requireErrorCode(t, env, "RateLimitError")
}
