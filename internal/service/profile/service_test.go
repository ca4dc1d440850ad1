package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

type userRepoMock struct {
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateNamesFunc            func(ctx context.Context, id uuid.UUID, firstName, lastName string) (*domain.User, error)
	SetOnboardingCompletedFunc func(ctx context.Context, id uuid.UUID, completed bool) error
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) (*domain.User, error) {
	return m.UpdateNamesFunc(ctx, id, firstName, lastName)
}

func (m *userRepoMock) SetOnboardingCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	return m.SetOnboardingCompletedFunc(ctx, id, completed)
}

type preferenceRepoMock struct {
	GetFunc           func(ctx context.Context, userID uuid.UUID) (domain.Preferences, error)
	UpsertSectionFunc func(ctx context.Context, userID uuid.UUID, section domain.ProfileSection, prefs domain.Preferences) error
}

func (m *preferenceRepoMock) Get(ctx context.Context, userID uuid.UUID) (domain.Preferences, error) {
	return m.GetFunc(ctx, userID)
}

func (m *preferenceRepoMock) UpsertSection(ctx context.Context, userID uuid.UUID, section domain.ProfileSection, prefs domain.Preferences) error {
	return m.UpsertSectionFunc(ctx, userID, section, prefs)
}

type historyRepoMock struct {
	AppendFunc func(ctx context.Context, records []domain.ProfileChangeRecord) error
	ListFunc   func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ProfileChangeRecord, error)
}

func (m *historyRepoMock) Append(ctx context.Context, records []domain.ProfileChangeRecord) error {
	return m.AppendFunc(ctx, records)
}

func (m *historyRepoMock) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ProfileChangeRecord, error) {
	return m.ListFunc(ctx, userID, limit)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func userMockFor(user *domain.User) *userRepoMock {
	return &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			u := *user
			return &u, nil
		},
		SetOnboardingCompletedFunc: func(ctx context.Context, id uuid.UUID, completed bool) error {
			return nil
		},
	}
}

func ignoringHistory() *historyRepoMock {
	return &historyRepoMock{
		AppendFunc: func(context.Context, []domain.ProfileChangeRecord) error { return nil },
	}
}

func dietaryInput() UpdateSectionInput {
	return UpdateSectionInput{
		Section: domain.SectionDietary,
		Dietary: &DietarySectionInput{Restrictions: []string{"vegetarian"}, Allergies: []string{}},
	}
}

// ─── GetProfile ─────────────────────────────────────────────────────────────

func TestService_GetProfile_NoPreferenceDocument(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	user := &domain.User{ID: userID, FirstName: "Ada", LastName: "Lovelace"}

	prefsMock := &preferenceRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (domain.Preferences, error) {
			return domain.Preferences{}, domain.ErrNotFound
		},
	}

	svc := NewService(testLogger(), userMockFor(user), prefsMock, ignoringHistory())

	result, err := svc.GetProfile(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}

	if result.Profile.Preferences.Dietary != nil {
		t.Error("dietary section must be unset")
	}
	// Names are 2 of the 7 required fields.
	if result.CompletionPercent < 28 || result.CompletionPercent > 29 {
		t.Errorf("CompletionPercent: got %f, want ~28.6", result.CompletionPercent)
	}
	if result.Complete {
		t.Error("profile must not be complete")
	}
}

func TestService_GetProfile_StoreFailure(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	prefsMock := &preferenceRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (domain.Preferences, error) {
			return domain.Preferences{}, domain.ErrPersistence
		},
	}

	svc := NewService(testLogger(), userMockFor(&domain.User{ID: userID}), prefsMock, ignoringHistory())

	_, err := svc.GetProfile(context.Background(), userID)
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
}

// ─── UpdateSection ──────────────────────────────────────────────────────────

func TestService_UpdateSection_FirstWrite(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	user := &domain.User{ID: userID}

	var upsertedSection domain.ProfileSection
	var upsertedPrefs domain.Preferences
	prefsMock := &preferenceRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (domain.Preferences, error) {
			return domain.Preferences{}, domain.ErrNotFound
		},
		UpsertSectionFunc: func(ctx context.Context, id uuid.UUID, section domain.ProfileSection, prefs domain.Preferences) error {
			upsertedSection = section
			upsertedPrefs = prefs
			return nil
		},
	}

	var appended []domain.ProfileChangeRecord
	historyMock := &historyRepoMock{
		AppendFunc: func(ctx context.Context, records []domain.ProfileChangeRecord) error {
			appended = records
			return nil
		},
	}

	svc := NewService(testLogger(), userMockFor(user), prefsMock, historyMock)

	result, err := svc.UpdateSection(context.Background(), userID, dietaryInput())
	if err != nil {
		t.Fatalf("UpdateSection returned error: %v", err)
	}

	if upsertedSection != domain.SectionDietary {
		t.Errorf("section: got %q", upsertedSection)
	}
	if upsertedPrefs.Dietary == nil || upsertedPrefs.Dietary.Restrictions[0] != "vegetarian" {
		t.Error("dietary section not written")
	}
	if upsertedPrefs.Budget != nil {
		t.Error("other sections must stay untouched")
	}

	// restrictions and allergies both went from unset to set
	if len(appended) != 2 {
		t.Fatalf("ledger records: got %d, want 2", len(appended))
	}
	for _, rec := range appended {
		if rec.OldValue != nil {
			t.Errorf("record %s: old value must be nil on first write", rec.Field)
		}
	}

	if result.Complete {
		t.Error("one section must not complete the profile")
	}
}

func TestService_UpdateSection_IdempotentWriteSkipsLedger(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	existing := domain.Preferences{
		UserID:  userID,
		Dietary: &domain.DietaryPreferences{Restrictions: []string{"vegetarian"}, Allergies: []string{}},
	}

	prefsMock := &preferenceRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (domain.Preferences, error) {
			return existing, nil
		},
		UpsertSectionFunc: func(ctx context.Context, id uuid.UUID, section domain.ProfileSection, prefs domain.Preferences) error {
			return nil
		},
	}
	historyMock := &historyRepoMock{
		AppendFunc: func(ctx context.Context, records []domain.ProfileChangeRecord) error {
			t.Errorf("ledger must not be touched for a no-op write, got %d records", len(records))
			return nil
		},
	}

	svc := NewService(testLogger(), userMockFor(&domain.User{ID: userID}), prefsMock, historyMock)

	if _, err := svc.UpdateSection(context.Background(), userID, dietaryInput()); err != nil {
		t.Fatalf("UpdateSection returned error: %v", err)
	}
}

func TestService_UpdateSection_LedgerFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	prefsMock := &preferenceRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (domain.Preferences, error) {
			return domain.Preferences{}, domain.ErrNotFound
		},
		UpsertSectionFunc: func(context.Context, uuid.UUID, domain.ProfileSection, domain.Preferences) error {
			return nil
		},
	}
	historyMock := &historyRepoMock{
		AppendFunc: func(context.Context, []domain.ProfileChangeRecord) error {
			return domain.ErrPersistence
		},
	}

	svc := NewService(testLogger(), userMockFor(&domain.User{ID: userID}), prefsMock, historyMock)

	if _, err := svc.UpdateSection(context.Background(), userID, dietaryInput()); err != nil {
		t.Fatalf("ledger failure must not fail the update, got %v", err)
	}
}

func TestService_UpdateSection_PreferenceWriteFailure(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	prefsMock := &preferenceRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (domain.Preferences, error) {
			return domain.Preferences{}, domain.ErrNotFound
		},
		UpsertSectionFunc: func(context.Context, uuid.UUID, domain.ProfileSection, domain.Preferences) error {
			return domain.ErrPersistence
		},
	}
	historyMock := &historyRepoMock{
		AppendFunc: func(context.Context, []domain.ProfileChangeRecord) error {
			t.Error("no ledger records after a failed write")
			return nil
		},
	}

	svc := NewService(testLogger(), userMockFor(&domain.User{ID: userID}), prefsMock, historyMock)

	_, err := svc.UpdateSection(context.Background(), userID, dietaryInput())
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
}

func TestService_UpdateSection_MacroSumRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &userRepoMock{}, &preferenceRepoMock{}, ignoringHistory())

	_, err := svc.UpdateSection(context.Background(), uuid.New(), UpdateSectionInput{
		Section: domain.SectionNutritional,
		Nutrition: &NutritionSectionInput{
			DailyCalories: 2200,
			ProteinPct:    0.5,
			CarbsPct:      0.4,
			FatPct:        0.3, // sums to 1.2
			Goal:          "maintain",
		},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestService_UpdateSection_PersonalUpdatesNames(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	user := &domain.User{ID: userID, FirstName: "", LastName: ""}

	var gotFirst, gotLast string
	usersMock := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			u := *user
			return &u, nil
		},
		UpdateNamesFunc: func(ctx context.Context, id uuid.UUID, firstName, lastName string) (*domain.User, error) {
			gotFirst, gotLast = firstName, lastName
			return &domain.User{ID: userID, FirstName: firstName, LastName: lastName}, nil
		},
		SetOnboardingCompletedFunc: func(ctx context.Context, id uuid.UUID, completed bool) error {
			return nil
		},
	}
	prefsMock := &preferenceRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (domain.Preferences, error) {
			return domain.Preferences{}, domain.ErrNotFound
		},
		UpsertSectionFunc: func(context.Context, uuid.UUID, domain.ProfileSection, domain.Preferences) error {
			return nil
		},
	}

	var appended []domain.ProfileChangeRecord
	historyMock := &historyRepoMock{
		AppendFunc: func(ctx context.Context, records []domain.ProfileChangeRecord) error {
			appended = records
			return nil
		},
	}

	svc := NewService(testLogger(), usersMock, prefsMock, historyMock)

	result, err := svc.UpdateSection(context.Background(), userID, UpdateSectionInput{
		Section: domain.SectionPersonal,
		Personal: &PersonalSectionInput{
			FirstName:     "  Ada ",
			LastName:      "Lovelace",
			HouseholdSize: 2,
			MealsPerDay:   3,
		},
	})
	if err != nil {
		t.Fatalf("UpdateSection returned error: %v", err)
	}

	if gotFirst != "Ada" || gotLast != "Lovelace" {
		t.Errorf("names: got %q %q", gotFirst, gotLast)
	}
	// first_name, last_name, household_size, meals_per_day all changed
	if len(appended) != 4 {
		t.Errorf("ledger records: got %d, want 4", len(appended))
	}
	if result.Profile.User.FirstName != "Ada" {
		t.Error("result must carry the updated user")
	}
}

func TestService_UpdateSection_CompletionSetsOnboardingFlag(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	user := &domain.User{ID: userID, FirstName: "Ada", LastName: "Lovelace"}
	existing := domain.Preferences{
		UserID:    userID,
		Dietary:   &domain.DietaryPreferences{Restrictions: []string{}, Allergies: []string{}},
		Budget:    &domain.BudgetPreferences{WeeklyMax: 120, Currency: "EUR"},
		Cooking:   &domain.CookingPreferences{ExperienceLevel: "beginner"},
		Nutrition: &domain.NutritionGoals{Goal: "maintain"},
	}

	var flagSet *bool
	usersMock := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			u := *user
			return &u, nil
		},
		UpdateNamesFunc: func(ctx context.Context, id uuid.UUID, firstName, lastName string) (*domain.User, error) {
			return &domain.User{ID: userID, FirstName: firstName, LastName: lastName}, nil
		},
		SetOnboardingCompletedFunc: func(ctx context.Context, id uuid.UUID, completed bool) error {
			flagSet = &completed
			return nil
		},
	}
	prefsMock := &preferenceRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (domain.Preferences, error) {
			return existing, nil
		},
		UpsertSectionFunc: func(context.Context, uuid.UUID, domain.ProfileSection, domain.Preferences) error {
			return nil
		},
	}

	svc := NewService(testLogger(), usersMock, prefsMock, ignoringHistory())

	result, err := svc.UpdateSection(context.Background(), userID, UpdateSectionInput{
		Section: domain.SectionPersonal,
		Personal: &PersonalSectionInput{
			FirstName:     "Ada",
			LastName:      "Lovelace",
			HouseholdSize: 2,
			MealsPerDay:   3,
		},
	})
	if err != nil {
		t.Fatalf("UpdateSection returned error: %v", err)
	}

	if !result.Complete || result.CompletionPercent != 100 {
		t.Fatalf("profile must be complete, got %f%%", result.CompletionPercent)
	}
	if flagSet == nil || !*flagSet {
		t.Error("onboarding flag must be set on completion")
	}
	if !result.Profile.User.OnboardingCompleted {
		t.Error("result must carry the flag")
	}
}

// ─── History ────────────────────────────────────────────────────────────────

func TestService_History_DefaultLimit(t *testing.T) {
	t.Parallel()

	var gotLimit int
	historyMock := &historyRepoMock{
		ListFunc: func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ProfileChangeRecord, error) {
			gotLimit = limit
			return []domain.ProfileChangeRecord{}, nil
		},
	}

	svc := NewService(testLogger(), &userRepoMock{}, &preferenceRepoMock{}, historyMock)

	if _, err := svc.History(context.Background(), uuid.New(), 0); err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if gotLimit != defaultHistoryLimit {
		t.Errorf("limit: got %d, want %d", gotLimit, defaultHistoryLimit)
	}

	if _, err := svc.History(context.Background(), uuid.New(), 10_000); err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if gotLimit != maxHistoryLimit {
		t.Errorf("limit: got %d, want %d", gotLimit, maxHistoryLimit)
	}
}
