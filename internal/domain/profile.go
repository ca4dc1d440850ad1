package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProfileSection is the unit of independent update in the profile layer.
type ProfileSection string

const (
	SectionDietary     ProfileSection = "dietary"
	SectionBudget      ProfileSection = "budget"
	SectionCooking     ProfileSection = "cooking"
	SectionNutritional ProfileSection = "nutritional"
	SectionPersonal    ProfileSection = "personal"
)

func (s ProfileSection) String() string { return string(s) }

// IsValid reports whether the section is one of the known values.
func (s ProfileSection) IsValid() bool {
	switch s {
	case SectionDietary, SectionBudget, SectionCooking, SectionNutritional, SectionPersonal:
		return true
	}
	return false
}

// ExperienceLevel values accepted in the cooking section.
var ExperienceLevels = []string{"beginner", "intermediate", "advanced"}

// NutritionGoalValues accepted in the nutritional section.
var NutritionGoalValues = []string{"lose_weight", "maintain", "gain_muscle"}

// DietaryPreferences holds the dietary section of a preference document.
type DietaryPreferences struct {
	Restrictions []string
	Allergies    []string
}

// BudgetPreferences holds the budget section of a preference document.
type BudgetPreferences struct {
	WeeklyMin float64
	WeeklyMax float64
	Currency  string
}

// CookingPreferences holds the cooking section of a preference document.
type CookingPreferences struct {
	ExperienceLevel string
	Equipment       []string
	MaxPrepMinutes  int
}

// NutritionGoals holds the nutritional section of a preference document.
// Macro percentages are fractions in [0,1] and must not sum above 1.
type NutritionGoals struct {
	DailyCalories int
	ProteinPct    float64
	CarbsPct      float64
	FatPct        float64
	Goal          string
}

// PersonalInfo holds the household part of the personal section.
// Name fields live on the users row, not here.
type PersonalInfo struct {
	HouseholdSize int
	MealsPerDay   int
}

// Preferences is the per-user preference document, keyed one-to-one by user
// id. A nil section means the user has not filled it in yet.
type Preferences struct {
	UserID    uuid.UUID
	Dietary   *DietaryPreferences
	Budget    *BudgetPreferences
	Cooking   *CookingPreferences
	Nutrition *NutritionGoals
	Personal  *PersonalInfo
	UpdatedAt time.Time
}

// Profile is the merged view over the identity and preference stores.
type Profile struct {
	User        User
	Preferences Preferences
}

// ProfileChangeRecord is one append-only ledger entry. Write-once: records
// are never mutated or deleted.
type ProfileChangeRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Field     string
	OldValue  any
	NewValue  any
	ChangedAt time.Time
}

// requiredFieldChecks lists every required profile field and whether it is
// filled. The set drives both the completion percentage and the
// onboarding-completed flag.
func (p Profile) requiredFieldChecks() []bool {
	prefs := p.Preferences
	return []bool{
		p.User.FirstName != "",
		p.User.LastName != "",
		prefs.Dietary != nil && prefs.Dietary.Restrictions != nil,
		prefs.Budget != nil && prefs.Budget.WeeklyMax > 0,
		prefs.Cooking != nil && prefs.Cooking.ExperienceLevel != "",
		prefs.Nutrition != nil && prefs.Nutrition.Goal != "",
		prefs.Personal != nil && prefs.Personal.HouseholdSize > 0,
	}
}

// CompletionPercent returns the fraction of required profile fields that are
// filled, in [0,100].
func (p Profile) CompletionPercent() float64 {
	checks := p.requiredFieldChecks()
	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return float64(filled) / float64(len(checks)) * 100
}

// IsComplete reports whether every required profile field is filled.
func (p Profile) IsComplete() bool {
	for _, ok := range p.requiredFieldChecks() {
		if !ok {
			return false
		}
	}
	return true
}
