package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Register creates a new password-authenticated user and issues a token
// pair. Returns ErrAlreadyExists if the email or username is taken. The
// verification mail is sent best-effort after the account is committed.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// Normalize input before validation.
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}
	hashStr := string(hash)

	// Email and username uniqueness are enforced by DB constraints.
	var createdUser *domain.User
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now()
		newUser := &domain.User{
			ID:           uuid.New(),
			Email:        input.Email,
			Username:     input.Username,
			PasswordHash: &hashStr,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Provider:     domain.AuthProviderPassword,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		user, err := s.users.Create(txCtx, newUser)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		createdUser = user
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	s.sendVerificationMailAsync(ctx, createdUser)

	result, err := s.issueTokens(ctx, createdUser)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", createdUser.ID.String()))

	return result, nil
}
