package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// UpdateSectionInput carries the payload for exactly one profile section.
type UpdateSectionInput struct {
	Section   domain.ProfileSection
	Dietary   *DietarySectionInput
	Budget    *BudgetSectionInput
	Cooking   *CookingSectionInput
	Nutrition *NutritionSectionInput
	Personal  *PersonalSectionInput
}

type DietarySectionInput struct {
	Restrictions []string
	Allergies    []string
}

type BudgetSectionInput struct {
	WeeklyMin float64
	WeeklyMax float64
	Currency  string
}

type CookingSectionInput struct {
	ExperienceLevel string
	Equipment       []string
	MaxPrepMinutes  int
}

type NutritionSectionInput struct {
	DailyCalories int
	ProteinPct    float64
	CarbsPct      float64
	FatPct        float64
	Goal          string
}

// PersonalSectionInput carries both the name fields that live on the users
// row and the household fields that live in the preference document.
type PersonalSectionInput struct {
	FirstName     string
	LastName      string
	HouseholdSize int
	MealsPerDay   int
}

// Validate checks the named section is known and its payload is present
// and well-formed.
func (i UpdateSectionInput) Validate() error {
	var errs []domain.FieldError

	if !i.Section.IsValid() {
		errs = append(errs, domain.FieldError{Field: "section", Message: "unknown section"})
		return &domain.ValidationError{Errors: errs}
	}

	switch i.Section {
	case domain.SectionDietary:
		if i.Dietary == nil {
			errs = append(errs, domain.FieldError{Field: "dietary", Message: "required"})
		} else {
			errs = i.Dietary.appendErrors(errs)
		}
	case domain.SectionBudget:
		if i.Budget == nil {
			errs = append(errs, domain.FieldError{Field: "budget", Message: "required"})
		} else {
			errs = i.Budget.appendErrors(errs)
		}
	case domain.SectionCooking:
		if i.Cooking == nil {
			errs = append(errs, domain.FieldError{Field: "cooking", Message: "required"})
		} else {
			errs = i.Cooking.appendErrors(errs)
		}
	case domain.SectionNutritional:
		if i.Nutrition == nil {
			errs = append(errs, domain.FieldError{Field: "nutritional", Message: "required"})
		} else {
			errs = i.Nutrition.appendErrors(errs)
		}
	case domain.SectionPersonal:
		if i.Personal == nil {
			errs = append(errs, domain.FieldError{Field: "personal", Message: "required"})
		} else {
			errs = i.Personal.appendErrors(errs)
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i *DietarySectionInput) appendErrors(errs []domain.FieldError) []domain.FieldError {
	errs = appendListErrors(errs, "dietary.restrictions", i.Restrictions)
	errs = appendListErrors(errs, "dietary.allergies", i.Allergies)
	return errs
}

func appendListErrors(errs []domain.FieldError, field string, values []string) []domain.FieldError {
	if len(values) > 50 {
		return append(errs, domain.FieldError{Field: field, Message: "too many entries"})
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return append(errs, domain.FieldError{Field: field, Message: "entries must not be blank"})
		}
		if len(v) > 64 {
			return append(errs, domain.FieldError{Field: field, Message: "entry too long"})
		}
	}
	return errs
}

func (i *BudgetSectionInput) appendErrors(errs []domain.FieldError) []domain.FieldError {
	if i.WeeklyMin < 0 {
		errs = append(errs, domain.FieldError{Field: "budget.weekly_min", Message: "must not be negative"})
	}
	if i.WeeklyMax <= 0 {
		errs = append(errs, domain.FieldError{Field: "budget.weekly_max", Message: "must be positive"})
	} else if i.WeeklyMax < i.WeeklyMin {
		errs = append(errs, domain.FieldError{Field: "budget.weekly_max", Message: "must not be below weekly_min"})
	}
	if len(i.Currency) != 3 {
		errs = append(errs, domain.FieldError{Field: "budget.currency", Message: "must be a 3-letter code"})
	}
	return errs
}

func (i *CookingSectionInput) appendErrors(errs []domain.FieldError) []domain.FieldError {
	if !slices.Contains(domain.ExperienceLevels, i.ExperienceLevel) {
		errs = append(errs, domain.FieldError{
			Field:   "cooking.experience_level",
			Message: fmt.Sprintf("must be one of %s", strings.Join(domain.ExperienceLevels, ", ")),
		})
	}
	if i.MaxPrepMinutes < 0 || i.MaxPrepMinutes > 24*60 {
		errs = append(errs, domain.FieldError{Field: "cooking.max_prep_minutes", Message: "out of range"})
	}
	errs = appendListErrors(errs, "cooking.equipment", i.Equipment)
	return errs
}

func (i *NutritionSectionInput) appendErrors(errs []domain.FieldError) []domain.FieldError {
	if i.DailyCalories < 0 || i.DailyCalories > 20000 {
		errs = append(errs, domain.FieldError{Field: "nutritional.daily_calories", Message: "out of range"})
	}
	for _, pct := range []struct {
		field string
		value float64
	}{
		{"nutritional.protein_pct", i.ProteinPct},
		{"nutritional.carbs_pct", i.CarbsPct},
		{"nutritional.fat_pct", i.FatPct},
	} {
		if pct.value < 0 || pct.value > 1 {
			errs = append(errs, domain.FieldError{Field: pct.field, Message: "must be a fraction between 0 and 1"})
		}
	}
	if i.ProteinPct+i.CarbsPct+i.FatPct > 1.0001 {
		errs = append(errs, domain.FieldError{Field: "nutritional", Message: "macro fractions must not sum above 1"})
	}
	if !slices.Contains(domain.NutritionGoalValues, i.Goal) {
		errs = append(errs, domain.FieldError{
			Field:   "nutritional.goal",
			Message: fmt.Sprintf("must be one of %s", strings.Join(domain.NutritionGoalValues, ", ")),
		})
	}
	return errs
}

func (i *PersonalSectionInput) appendErrors(errs []domain.FieldError) []domain.FieldError {
	if strings.TrimSpace(i.FirstName) == "" {
		errs = append(errs, domain.FieldError{Field: "personal.first_name", Message: "required"})
	} else if len(i.FirstName) > 100 {
		errs = append(errs, domain.FieldError{Field: "personal.first_name", Message: "too long"})
	}
	if strings.TrimSpace(i.LastName) == "" {
		errs = append(errs, domain.FieldError{Field: "personal.last_name", Message: "required"})
	} else if len(i.LastName) > 100 {
		errs = append(errs, domain.FieldError{Field: "personal.last_name", Message: "too long"})
	}
	if i.HouseholdSize < 1 || i.HouseholdSize > 20 {
		errs = append(errs, domain.FieldError{Field: "personal.household_size", Message: "out of range"})
	}
	if i.MealsPerDay < 1 || i.MealsPerDay > 10 {
		errs = append(errs, domain.FieldError{Field: "personal.meals_per_day", Message: "out of range"})
	}
	return errs
}
