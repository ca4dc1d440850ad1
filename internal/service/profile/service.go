// Package profile implements the merged profile view over the identity and
// preference stores, section updates and the change-history ledger.
package profile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// userRepo defines the user repository interface needed by profile service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) (*domain.User, error)
	SetOnboardingCompleted(ctx context.Context, id uuid.UUID, completed bool) error
}

// preferenceRepo defines the preference store interface.
type preferenceRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.Preferences, error)
	UpsertSection(ctx context.Context, userID uuid.UUID, section domain.ProfileSection, prefs domain.Preferences) error
}

// historyRepo defines the append-only change ledger interface.
type historyRepo interface {
	Append(ctx context.Context, records []domain.ProfileChangeRecord) error
	List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ProfileChangeRecord, error)
}

// Service implements profile operations.
type Service struct {
	log     *slog.Logger
	users   userRepo
	prefs   preferenceRepo
	history historyRepo
}

// NewService creates a new profile service instance.
func NewService(logger *slog.Logger, users userRepo, prefs preferenceRepo, history historyRepo) *Service {
	return &Service{
		log:     logger.With("service", "profile"),
		users:   users,
		prefs:   prefs,
		history: history,
	}
}

// ProfileResult is the merged profile plus its completion state.
type ProfileResult struct {
	Profile           domain.Profile
	CompletionPercent float64
	Complete          bool
}
