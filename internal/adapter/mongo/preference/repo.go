// Package preference stores the per-user preference document. Documents are
// keyed one-to-one by user id and written one section at a time.
package preference

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/foodi-app/foodi-backend/internal/adapter/mongo"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

const collectionName = "preferences"

type Repo struct {
	coll *driver.Collection
}

func NewRepo(client *mongo.Client) *Repo {
	return &Repo{coll: client.Database().Collection(collectionName)}
}

type dietaryDoc struct {
	Restrictions []string `bson:"restrictions"`
	Allergies    []string `bson:"allergies"`
}

type budgetDoc struct {
	WeeklyMin float64 `bson:"weekly_min"`
	WeeklyMax float64 `bson:"weekly_max"`
	Currency  string  `bson:"currency"`
}

type cookingDoc struct {
	ExperienceLevel string   `bson:"experience_level"`
	Equipment       []string `bson:"equipment"`
	MaxPrepMinutes  int      `bson:"max_prep_minutes"`
}

type nutritionDoc struct {
	DailyCalories int     `bson:"daily_calories"`
	ProteinPct    float64 `bson:"protein_pct"`
	CarbsPct      float64 `bson:"carbs_pct"`
	FatPct        float64 `bson:"fat_pct"`
	Goal          string  `bson:"goal"`
}

type personalDoc struct {
	HouseholdSize int `bson:"household_size"`
	MealsPerDay   int `bson:"meals_per_day"`
}

// preferenceDoc is the stored shape. The _id is the user id rendered as a
// string, which keeps lookups a plain point read.
type preferenceDoc struct {
	UserID    string        `bson:"_id"`
	Dietary   *dietaryDoc   `bson:"dietary,omitempty"`
	Budget    *budgetDoc    `bson:"budget,omitempty"`
	Cooking   *cookingDoc   `bson:"cooking,omitempty"`
	Nutrition *nutritionDoc `bson:"nutritional,omitempty"`
	Personal  *personalDoc  `bson:"personal,omitempty"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// Get loads the preference document for a user. A user who never saved any
// section has no document, which surfaces as domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (domain.Preferences, error) {
	var doc preferenceDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: userID.String()}}).Decode(&doc)
	if err != nil {
		return domain.Preferences{}, mongo.MapError(err, "preference.Get")
	}
	return toDomain(userID, doc), nil
}

// UpsertSection writes exactly one section of the preference document,
// creating the document if it does not exist yet. Sections other than the
// named one are never touched.
func (r *Repo) UpsertSection(ctx context.Context, userID uuid.UUID, section domain.ProfileSection, prefs domain.Preferences) error {
	field, err := sectionDoc(section, prefs)
	if err != nil {
		return fmt.Errorf("preference.UpsertSection: %w", err)
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: string(section), Value: field},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	_, err = r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID.String()}},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return mongo.MapError(err, "preference.UpsertSection")
	}
	return nil
}

// Delete removes the whole preference document. Deleting a document that
// does not exist is not an error.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: userID.String()}})
	if err != nil {
		return mongo.MapError(err, "preference.Delete")
	}
	return nil
}

func sectionDoc(section domain.ProfileSection, prefs domain.Preferences) (any, error) {
	switch section {
	case domain.SectionDietary:
		if prefs.Dietary == nil {
			return nil, fmt.Errorf("%w: empty dietary section", domain.ErrValidation)
		}
		return dietaryDoc(*prefs.Dietary), nil
	case domain.SectionBudget:
		if prefs.Budget == nil {
			return nil, fmt.Errorf("%w: empty budget section", domain.ErrValidation)
		}
		return budgetDoc(*prefs.Budget), nil
	case domain.SectionCooking:
		if prefs.Cooking == nil {
			return nil, fmt.Errorf("%w: empty cooking section", domain.ErrValidation)
		}
		return cookingDoc(*prefs.Cooking), nil
	case domain.SectionNutritional:
		if prefs.Nutrition == nil {
			return nil, fmt.Errorf("%w: empty nutritional section", domain.ErrValidation)
		}
		return nutritionDoc(*prefs.Nutrition), nil
	case domain.SectionPersonal:
		if prefs.Personal == nil {
			return nil, fmt.Errorf("%w: empty personal section", domain.ErrValidation)
		}
		return personalDoc(*prefs.Personal), nil
	default:
		return nil, fmt.Errorf("%w: unknown section %q", domain.ErrValidation, section)
	}
}

func toDomain(userID uuid.UUID, doc preferenceDoc) domain.Preferences {
	prefs := domain.Preferences{
		UserID:    userID,
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.Dietary != nil {
		d := domain.DietaryPreferences(*doc.Dietary)
		prefs.Dietary = &d
	}
	if doc.Budget != nil {
		b := domain.BudgetPreferences(*doc.Budget)
		prefs.Budget = &b
	}
	if doc.Cooking != nil {
		c := domain.CookingPreferences(*doc.Cooking)
		prefs.Cooking = &c
	}
	if doc.Nutrition != nil {
		n := domain.NutritionGoals(*doc.Nutrition)
		prefs.Nutrition = &n
	}
	if doc.Personal != nil {
		p := domain.PersonalInfo(*doc.Personal)
		prefs.Personal = &p
	}
	return prefs
}
