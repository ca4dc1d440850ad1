package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
	"github.com/foodi-app/foodi-backend/internal/service/auth"
	"github.com/foodi-app/foodi-backend/pkg/ctxutil"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	SocialLogin(ctx context.Context, input auth.SocialLoginInput) (*auth.AuthResult, error)
	VerifyEmail(ctx context.Context, input auth.VerifyEmailInput) error
	ResendVerification(ctx context.Context, userID uuid.UUID) error
	Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	Logout(ctx context.Context) error
}

// AuthHandler serves registration, login and token endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// socialLoginRequest also accepts email and name fields for wire
// compatibility with older clients; identity always comes from the provider,
// never from the request body.
type socialLoginRequest struct {
	Provider    string `json:"provider"`
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	User         userResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
}

type userResponse struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Username            string    `json:"username"`
	FirstName           string    `json:"first_name,omitempty"`
	LastName            string    `json:"last_name,omitempty"`
	Provider            string    `json:"provider"`
	EmailVerified       bool      `json:"email_verified"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                  u.ID.String(),
		Email:               u.Email,
		Username:            u.Username,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Provider:            u.Provider.String(),
		EmailVerified:       u.EmailVerified,
		OnboardingCompleted: u.OnboardingCompleted,
		CreatedAt:           u.CreatedAt,
	}
}

func toAuthResponse(res *auth.AuthResult) authResponse {
	return authResponse{
		User:         toUserResponse(res.User),
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
	}
}

// Register handles POST /api/v1/users/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "UserAlreadyExistsError", "email or username already registered", nil)
			return
		}
		respondError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusCreated, toAuthResponse(res))
}

// Login handles POST /api/v1/users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.svc.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "AuthenticationError", "invalid email or password", nil)
			return
		}
		respondError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, toAuthResponse(res))
}

// SocialLogin handles POST /api/v1/users/social-login.
func (h *AuthHandler) SocialLogin(w http.ResponseWriter, r *http.Request) {
	var req socialLoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.svc.SocialLogin(r.Context(), auth.SocialLoginInput{
		Provider:    req.Provider,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "AuthenticationError", "provider rejected the access token", nil)
			return
		}
		respondError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, toAuthResponse(res))
}

// VerifyEmail handles POST /api/v1/users/verify-email.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.VerifyEmail(r.Context(), auth.VerifyEmailInput{Token: req.Token}); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"verified": true})
}

// ResendVerification handles POST /api/v1/users/resend-verification.
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthenticationError", "authentication required", nil)
		return
	}

	if err := h.svc.ResendVerification(r.Context(), userID); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"sent": true})
}

// Refresh handles POST /api/v1/users/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.svc.Refresh(r.Context(), auth.RefreshInput{RefreshToken: req.RefreshToken})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, toAuthResponse(res))
}

// Logout handles POST /api/v1/users/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true})
}
