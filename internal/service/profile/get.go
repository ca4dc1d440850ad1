package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// GetProfile merges the identity row with the preference document. A user
// without a preference document gets a profile with all sections empty.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile.GetProfile get user: %w", err)
	}

	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("profile.GetProfile get preferences: %w", err)
		}
		prefs = domain.Preferences{UserID: userID}
	}

	p := domain.Profile{User: *user, Preferences: prefs}
	return &ProfileResult{
		Profile:           p,
		CompletionPercent: p.CompletionPercent(),
		Complete:          p.IsComplete(),
	}, nil
}
