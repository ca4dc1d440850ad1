package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// History returns the newest ledger records for a user, most recent first.
// A non-positive limit falls back to the default page size.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ProfileChangeRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := s.history.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("profile.History: %w", err)
	}
	return records, nil
}
