package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/auth"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// VerifyEmail consumes a verification token and marks the account's email
// as verified. Unknown and expired tokens surface as ErrInvalidToken.
// Replaying a token for an account that is already verified succeeds as a
// no-op, so double clicks and mail-scanner prefetches do not show the user
// an error.
func (s *Service) VerifyEmail(ctx context.Context, input VerifyEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	hash := auth.HashToken(input.Token)

	token, err := s.tokens.GetVerificationByHash(ctx, hash, domain.TokenPurposeEmailVerify)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidToken
		}
		return fmt.Errorf("auth.VerifyEmail get token: %w", err)
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidToken
		}
		return fmt.Errorf("auth.VerifyEmail get user: %w", err)
	}

	if user.EmailVerified {
		return nil
	}

	if !token.IsUsable(time.Now()) {
		return domain.ErrInvalidToken
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tokens.ConsumeVerification(txCtx, token.ID); err != nil {
			return fmt.Errorf("consume token: %w", err)
		}
		if err := s.users.SetEmailVerified(txCtx, user.ID); err != nil {
			return fmt.Errorf("mark verified: %w", err)
		}
		return nil
	})
	if err != nil {
		// A concurrent consume loses the race and reads as invalid.
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidToken
		}
		return fmt.Errorf("auth.VerifyEmail: %w", err)
	}

	s.log.InfoContext(ctx, "email verified",
		slog.String("user_id", user.ID.String()))

	return nil
}

// ResendVerification issues a fresh verification token for the
// authenticated user. Verified accounts get a no-op success.
func (s *Service) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("auth.ResendVerification get user: %w", err)
	}

	if user.EmailVerified {
		return nil
	}

	s.sendVerificationMailAsync(ctx, user)
	return nil
}
