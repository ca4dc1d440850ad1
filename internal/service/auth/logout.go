package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
	"github.com/foodi-app/foodi-backend/pkg/ctxutil"
)

// Logout revokes all refresh tokens for the authenticated user.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) Logout(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.tokens.RevokeAllRefreshByUser(ctx, userID); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", userID.String()))
	return nil
}

// ValidateToken validates an access token and returns the user ID.
// Returns ErrUnauthorized if the token is invalid or expired.
func (s *Service) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// CleanupExpiredTokens removes expired refresh and verification tokens.
// Returns the total number of rows deleted. This is a maintenance operation.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	refresh, err := s.tokens.DeleteExpiredRefresh(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "refresh token cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}

	verification, err := s.tokens.DeleteExpiredVerification(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "verification token cleanup failed", slog.String("error", err.Error()))
		return refresh, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}

	total := refresh + verification
	if total > 0 {
		s.log.InfoContext(ctx, "cleaned up expired tokens",
			slog.Int("refresh", refresh),
			slog.Int("verification", verification))
	}

	return total, nil
}
