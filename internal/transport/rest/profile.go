package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
	"github.com/foodi-app/foodi-backend/internal/service/profile"
	"github.com/foodi-app/foodi-backend/pkg/ctxutil"
)

// profileService defines the minimal interface needed by ProfileHandler.
type profileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*profile.ProfileResult, error)
	UpdateSection(ctx context.Context, userID uuid.UUID, input profile.UpdateSectionInput) (*profile.ProfileResult, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ProfileChangeRecord, error)
}

// ProfileHandler serves the merged profile, section updates and the change
// history.
type ProfileHandler struct {
	svc profileService
	log *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: logger.With("handler", "profile")}
}

type dietarySectionRequest struct {
	Restrictions []string `json:"restrictions"`
	Allergies    []string `json:"allergies"`
}

type budgetSectionRequest struct {
	WeeklyMin float64 `json:"weekly_min"`
	WeeklyMax float64 `json:"weekly_max"`
	Currency  string  `json:"currency"`
}

type cookingSectionRequest struct {
	ExperienceLevel string   `json:"experience_level"`
	Equipment       []string `json:"equipment"`
	MaxPrepMinutes  int      `json:"max_prep_minutes"`
}

type nutritionSectionRequest struct {
	DailyCalories int     `json:"daily_calories"`
	ProteinPct    float64 `json:"protein_pct"`
	CarbsPct      float64 `json:"carbs_pct"`
	FatPct        float64 `json:"fat_pct"`
	Goal          string  `json:"goal"`
}

type personalSectionRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	HouseholdSize int    `json:"household_size"`
	MealsPerDay   int    `json:"meals_per_day"`
}

type updateSectionRequest struct {
	Section   string                   `json:"section"`
	Dietary   *dietarySectionRequest   `json:"dietary,omitempty"`
	Budget    *budgetSectionRequest    `json:"budget,omitempty"`
	Cooking   *cookingSectionRequest   `json:"cooking,omitempty"`
	Nutrition *nutritionSectionRequest `json:"nutritional,omitempty"`
	Personal  *personalSectionRequest  `json:"personal,omitempty"`
}

type preferencesResponse struct {
	Dietary   *dietarySectionRequest   `json:"dietary,omitempty"`
	Budget    *budgetSectionRequest    `json:"budget,omitempty"`
	Cooking   *cookingSectionRequest   `json:"cooking,omitempty"`
	Nutrition *nutritionSectionRequest `json:"nutritional,omitempty"`
	Personal  *personalSectionRequest  `json:"personal,omitempty"`
}

type profileResponse struct {
	User              userResponse        `json:"user"`
	Preferences       preferencesResponse `json:"preferences"`
	CompletionPercent float64             `json:"completion_percent"`
	Complete          bool                `json:"complete"`
}

type changeRecordResponse struct {
	ID        string    `json:"id"`
	Field     string    `json:"field"`
	OldValue  any       `json:"old_value"`
	NewValue  any       `json:"new_value"`
	ChangedAt time.Time `json:"changed_at"`
}

func toProfileResponse(res *profile.ProfileResult) profileResponse {
	p := res.Profile
	out := profileResponse{
		User:              toUserResponse(&p.User),
		CompletionPercent: res.CompletionPercent,
		Complete:          res.Complete,
	}
	prefs := p.Preferences
	if prefs.Dietary != nil {
		out.Preferences.Dietary = &dietarySectionRequest{
			Restrictions: prefs.Dietary.Restrictions,
			Allergies:    prefs.Dietary.Allergies,
		}
	}
	if prefs.Budget != nil {
		out.Preferences.Budget = &budgetSectionRequest{
			WeeklyMin: prefs.Budget.WeeklyMin,
			WeeklyMax: prefs.Budget.WeeklyMax,
			Currency:  prefs.Budget.Currency,
		}
	}
	if prefs.Cooking != nil {
		out.Preferences.Cooking = &cookingSectionRequest{
			ExperienceLevel: prefs.Cooking.ExperienceLevel,
			Equipment:       prefs.Cooking.Equipment,
			MaxPrepMinutes:  prefs.Cooking.MaxPrepMinutes,
		}
	}
	if prefs.Nutrition != nil {
		out.Preferences.Nutrition = &nutritionSectionRequest{
			DailyCalories: prefs.Nutrition.DailyCalories,
			ProteinPct:    prefs.Nutrition.ProteinPct,
			CarbsPct:      prefs.Nutrition.CarbsPct,
			FatPct:        prefs.Nutrition.FatPct,
			Goal:          prefs.Nutrition.Goal,
		}
	}
	if prefs.Personal != nil {
		out.Preferences.Personal = &personalSectionRequest{
			FirstName:     p.User.FirstName,
			LastName:      p.User.LastName,
			HouseholdSize: prefs.Personal.HouseholdSize,
			MealsPerDay:   prefs.Personal.MealsPerDay,
		}
	}
	return out
}

// isUserGone reports whether the error means the account behind the token no
// longer exists. Preference lookups never surface ErrNotFound from the
// profile service, so a not-found here is always the user row.
func isUserGone(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

func toSectionInput(req updateSectionRequest) profile.UpdateSectionInput {
	input := profile.UpdateSectionInput{Section: domain.ProfileSection(req.Section)}
	if req.Dietary != nil {
		input.Dietary = &profile.DietarySectionInput{
			Restrictions: req.Dietary.Restrictions,
			Allergies:    req.Dietary.Allergies,
		}
	}
	if req.Budget != nil {
		input.Budget = &profile.BudgetSectionInput{
			WeeklyMin: req.Budget.WeeklyMin,
			WeeklyMax: req.Budget.WeeklyMax,
			Currency:  req.Budget.Currency,
		}
	}
	if req.Cooking != nil {
		input.Cooking = &profile.CookingSectionInput{
			ExperienceLevel: req.Cooking.ExperienceLevel,
			Equipment:       req.Cooking.Equipment,
			MaxPrepMinutes:  req.Cooking.MaxPrepMinutes,
		}
	}
	if req.Nutrition != nil {
		input.Nutrition = &profile.NutritionSectionInput{
			DailyCalories: req.Nutrition.DailyCalories,
			ProteinPct:    req.Nutrition.ProteinPct,
			CarbsPct:      req.Nutrition.CarbsPct,
			FatPct:        req.Nutrition.FatPct,
			Goal:          req.Nutrition.Goal,
		}
	}
	if req.Personal != nil {
		input.Personal = &profile.PersonalSectionInput{
			FirstName:     req.Personal.FirstName,
			LastName:      req.Personal.LastName,
			HouseholdSize: req.Personal.HouseholdSize,
			MealsPerDay:   req.Personal.MealsPerDay,
		}
	}
	return input
}

// Get handles GET /api/v1/users/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthenticationError", "authentication required", nil)
		return
	}

	res, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		if isUserGone(err) {
			writeError(w, http.StatusNotFound, "UserNotFoundError", "user not found", nil)
			return
		}
		respondError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, toProfileResponse(res))
}

// UpdatePersonal handles PUT /api/v1/users/profile, a shorthand that updates
// the personal section only.
func (h *ProfileHandler) UpdatePersonal(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthenticationError", "authentication required", nil)
		return
	}

	var req personalSectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	h.updateSection(w, r, userID, updateSectionRequest{
		Section:  string(domain.SectionPersonal),
		Personal: &req,
	})
}

// UpdateSection handles PUT /api/v1/users/profile/section.
func (h *ProfileHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthenticationError", "authentication required", nil)
		return
	}

	var req updateSectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	h.updateSection(w, r, userID, req)
}

func (h *ProfileHandler) updateSection(w http.ResponseWriter, r *http.Request, userID uuid.UUID, req updateSectionRequest) {
	res, err := h.svc.UpdateSection(r.Context(), userID, toSectionInput(req))
	if err != nil {
		if isUserGone(err) {
			writeError(w, http.StatusNotFound, "UserNotFoundError", "user not found", nil)
			return
		}
		respondError(w, r, h.log, err)
		return
	}

	writeSuccess(w, http.StatusOK, toProfileResponse(res))
}

// History handles GET /api/v1/users/profile/history.
func (h *ProfileHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthenticationError", "authentication required", nil)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "ValidationError", "limit must be an integer", nil)
			return
		}
		limit = parsed
	}

	records, err := h.svc.History(r.Context(), userID, limit)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]changeRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, changeRecordResponse{
			ID:        rec.ID.String(),
			Field:     rec.Field,
			OldValue:  rec.OldValue,
			NewValue:  rec.NewValue,
			ChangedAt: rec.ChangedAt,
		})
	}
	writeSuccess(w, http.StatusOK, out)
}
