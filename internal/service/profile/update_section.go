package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// UpdateSection overwrites one profile section. The preference document is
// written first; name fields from the personal section land on the users
// row. Every changed field gets a ledger record, appended best-effort: a
// ledger failure is logged but never fails the update.
func (s *Service) UpdateSection(ctx context.Context, userID uuid.UUID, input UpdateSectionInput) (*ProfileResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile.UpdateSection get user: %w", err)
	}

	oldPrefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("profile.UpdateSection get preferences: %w", err)
		}
		oldPrefs = domain.Preferences{UserID: userID}
	}

	oldValues := sectionValues(input.Section, oldPrefs, user)
	newPrefs := applySection(oldPrefs, input)

	if err := s.prefs.UpsertSection(ctx, userID, input.Section, newPrefs); err != nil {
		return nil, fmt.Errorf("profile.UpdateSection write preferences: %w", err)
	}

	if input.Section == domain.SectionPersonal {
		firstName := strings.TrimSpace(input.Personal.FirstName)
		lastName := strings.TrimSpace(input.Personal.LastName)
		if user.FirstName != firstName || user.LastName != lastName {
			user, err = s.users.UpdateNames(ctx, userID, firstName, lastName)
			if err != nil {
				return nil, fmt.Errorf("profile.UpdateSection update names: %w", err)
			}
		}
	}

	newValues := sectionValues(input.Section, newPrefs, user)
	records := diffRecords(userID, oldValues, newValues)
	if len(records) > 0 {
		if err := s.history.Append(ctx, records); err != nil {
			s.log.ErrorContext(ctx, "profile history append failed",
				slog.String("user_id", userID.String()),
				slog.String("section", input.Section.String()),
				slog.String("error", err.Error()))
		}
	}

	p := domain.Profile{User: *user, Preferences: newPrefs}
	complete := p.IsComplete()

	if user.OnboardingCompleted != complete {
		if err := s.users.SetOnboardingCompleted(ctx, userID, complete); err != nil {
			return nil, fmt.Errorf("profile.UpdateSection set onboarding flag: %w", err)
		}
		user.OnboardingCompleted = complete
		p.User = *user
	}

	s.log.InfoContext(ctx, "profile section updated",
		slog.String("user_id", userID.String()),
		slog.String("section", input.Section.String()),
		slog.Int("changed_fields", len(records)))

	return &ProfileResult{
		Profile:           p,
		CompletionPercent: p.CompletionPercent(),
		Complete:          complete,
	}, nil
}

// applySection returns a copy of prefs with the input's section replaced.
func applySection(prefs domain.Preferences, input UpdateSectionInput) domain.Preferences {
	switch input.Section {
	case domain.SectionDietary:
		prefs.Dietary = &domain.DietaryPreferences{
			Restrictions: normalizeList(input.Dietary.Restrictions),
			Allergies:    normalizeList(input.Dietary.Allergies),
		}
	case domain.SectionBudget:
		prefs.Budget = &domain.BudgetPreferences{
			WeeklyMin: input.Budget.WeeklyMin,
			WeeklyMax: input.Budget.WeeklyMax,
			Currency:  strings.ToUpper(input.Budget.Currency),
		}
	case domain.SectionCooking:
		prefs.Cooking = &domain.CookingPreferences{
			ExperienceLevel: input.Cooking.ExperienceLevel,
			Equipment:       normalizeList(input.Cooking.Equipment),
			MaxPrepMinutes:  input.Cooking.MaxPrepMinutes,
		}
	case domain.SectionNutritional:
		prefs.Nutrition = &domain.NutritionGoals{
			DailyCalories: input.Nutrition.DailyCalories,
			ProteinPct:    input.Nutrition.ProteinPct,
			CarbsPct:      input.Nutrition.CarbsPct,
			FatPct:        input.Nutrition.FatPct,
			Goal:          input.Nutrition.Goal,
		}
	case domain.SectionPersonal:
		prefs.Personal = &domain.PersonalInfo{
			HouseholdSize: input.Personal.HouseholdSize,
			MealsPerDay:   input.Personal.MealsPerDay,
		}
	}
	return prefs
}

// normalizeList trims entries; an explicit empty list stays an empty list,
// which is distinct from a section that was never set.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// fieldValue is one ledger-addressable field of a section.
type fieldValue struct {
	name  string
	value any
}

// sectionValues flattens a section into its ledger fields. Fields of an
// unset section read as nil, so first-time writes record old_value null.
func sectionValues(section domain.ProfileSection, prefs domain.Preferences, user *domain.User) []fieldValue {
	switch section {
	case domain.SectionDietary:
		if prefs.Dietary == nil {
			return []fieldValue{{"dietary.restrictions", nil}, {"dietary.allergies", nil}}
		}
		return []fieldValue{
			{"dietary.restrictions", prefs.Dietary.Restrictions},
			{"dietary.allergies", prefs.Dietary.Allergies},
		}
	case domain.SectionBudget:
		if prefs.Budget == nil {
			return []fieldValue{{"budget.weekly_min", nil}, {"budget.weekly_max", nil}, {"budget.currency", nil}}
		}
		return []fieldValue{
			{"budget.weekly_min", prefs.Budget.WeeklyMin},
			{"budget.weekly_max", prefs.Budget.WeeklyMax},
			{"budget.currency", prefs.Budget.Currency},
		}
	case domain.SectionCooking:
		if prefs.Cooking == nil {
			return []fieldValue{{"cooking.experience_level", nil}, {"cooking.equipment", nil}, {"cooking.max_prep_minutes", nil}}
		}
		return []fieldValue{
			{"cooking.experience_level", prefs.Cooking.ExperienceLevel},
			{"cooking.equipment", prefs.Cooking.Equipment},
			{"cooking.max_prep_minutes", prefs.Cooking.MaxPrepMinutes},
		}
	case domain.SectionNutritional:
		if prefs.Nutrition == nil {
			return []fieldValue{
				{"nutritional.daily_calories", nil}, {"nutritional.protein_pct", nil},
				{"nutritional.carbs_pct", nil}, {"nutritional.fat_pct", nil}, {"nutritional.goal", nil},
			}
		}
		return []fieldValue{
			{"nutritional.daily_calories", prefs.Nutrition.DailyCalories},
			{"nutritional.protein_pct", prefs.Nutrition.ProteinPct},
			{"nutritional.carbs_pct", prefs.Nutrition.CarbsPct},
			{"nutritional.fat_pct", prefs.Nutrition.FatPct},
			{"nutritional.goal", prefs.Nutrition.Goal},
		}
	case domain.SectionPersonal:
		values := []fieldValue{
			{"personal.first_name", nilIfEmpty(user.FirstName)},
			{"personal.last_name", nilIfEmpty(user.LastName)},
		}
		if prefs.Personal == nil {
			return append(values, fieldValue{"personal.household_size", nil}, fieldValue{"personal.meals_per_day", nil})
		}
		return append(values,
			fieldValue{"personal.household_size", prefs.Personal.HouseholdSize},
			fieldValue{"personal.meals_per_day", prefs.Personal.MealsPerDay},
		)
	}
	return nil
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// diffRecords emits one ledger record per field whose value changed.
func diffRecords(userID uuid.UUID, oldValues, newValues []fieldValue) []domain.ProfileChangeRecord {
	now := time.Now().UTC()
	var records []domain.ProfileChangeRecord
	for i, nv := range newValues {
		ov := oldValues[i]
		if reflect.DeepEqual(ov.value, nv.value) {
			continue
		}
		records = append(records, domain.ProfileChangeRecord{
			ID:        uuid.New(),
			UserID:    userID,
			Field:     nv.name,
			OldValue:  ov.value,
			NewValue:  nv.value,
			ChangedAt: now,
		})
	}
	return records
}
