package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// SocialLogin authenticates through a social provider access token,
// creating the account on first login. An email already registered with a
// password returns ErrConflict instead of silently linking accounts.
func (s *Service) SocialLogin(ctx context.Context, input SocialLoginInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.social.VerifyAccessToken(ctx, input.AccessToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.SocialLogin verify token: %w", err)
	}

	provider := domain.AuthProvider(input.Provider)

	user, err := s.users.GetByProvider(ctx, provider, identity.ProviderID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.SocialLogin get user: %w", err)
	}

	if user == nil {
		user, err = s.createSocialUser(ctx, provider, identity.ProviderID, identity.Email, identity.FirstName, identity.LastName)
		if err != nil {
			return nil, err
		}
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.SocialLogin issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in via social provider",
		slog.String("user_id", user.ID.String()),
		slog.String("provider", input.Provider))

	return result, nil
}

func (s *Service) createSocialUser(ctx context.Context, provider domain.AuthProvider, providerID, email string, firstName, lastName *string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// Same email registered through another path is a conflict, not a merge.
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.SocialLogin get user by email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("auth.SocialLogin: email registered with another method: %w", domain.ErrConflict)
	}

	var createdUser *domain.User
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now()
		newUser := &domain.User{
			ID:         uuid.New(),
			Email:      email,
			Username:   usernameFromEmail(email),
			FirstName:  derefOrEmpty(firstName),
			LastName:   derefOrEmpty(lastName),
			Provider:   provider,
			ProviderID: &providerID,
			// The provider already verified this address.
			EmailVerified: true,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		user, err := s.users.Create(txCtx, newUser)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		createdUser = user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.SocialLogin: %w", err)
	}

	s.log.InfoContext(ctx, "user created via social provider",
		slog.String("user_id", createdUser.ID.String()),
		slog.String("provider", provider.String()))

	return createdUser, nil
}

// usernameFromEmail derives a unique username from the email local part
// with a random suffix, since social providers carry no username.
func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if len(local) > 24 {
		local = local[:24]
	}
	return local + "-" + uuid.NewString()[:6]
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
