package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
	"github.com/foodi-app/foodi-backend/internal/service/pantry"
)

// pantryService defines the minimal interface needed by PantryHandler.
type pantryService interface {
	Add(ctx context.Context, userID uuid.UUID, input pantry.ItemInput) (*domain.PantryItem, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.PantryItem, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error)
	Update(ctx context.Context, userID, id uuid.UUID, input pantry.ItemInput) (*domain.PantryItem, error)
	Remove(ctx context.Context, userID, id uuid.UUID) error
	Expiring(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error)
	Cleanup(ctx context.Context, userID uuid.UUID) (int, error)
	Stats(ctx context.Context, userID uuid.UUID) (*domain.PantryStats, error)
}

// PantryHandler serves the pantry inventory endpoints.
type PantryHandler struct {
	svc pantryService
	log *slog.Logger
}

// NewPantryHandler creates a PantryHandler.
func NewPantryHandler(svc pantryService, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{svc: svc, log: logger.With("handler", "pantry")}
}

type pantryItemRequest struct {
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Category  string     `json:"category"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type pantryItemResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit,omitempty"`
	Category  string     `json:"category,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type pantryStatsResponse struct {
	TotalItems   int            `json:"total_items"`
	ExpiredItems int            `json:"expired_items"`
	ExpiringSoon int            `json:"expiring_soon"`
	ByCategory   map[string]int `json:"by_category"`
}

func toPantryItemResponse(i *domain.PantryItem) pantryItemResponse {
	return pantryItemResponse{
		ID:        i.ID.String(),
		Name:      i.Name,
		Quantity:  i.Quantity,
		Unit:      i.Unit,
		Category:  i.Category,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func toItemInput(req pantryItemRequest) pantry.ItemInput {
	return pantry.ItemInput{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Category:  req.Category,
		ExpiresAt: req.ExpiresAt,
	}
}

func writePantryItems(w http.ResponseWriter, items []*domain.PantryItem) {
	out := make([]pantryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toPantryItemResponse(item))
	}
	writeSuccess(w, http.StatusOK, out)
}

// Add handles POST /api/v1/pantry.
func (h *PantryHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req pantryItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.svc.Add(r.Context(), userID, toItemInput(req))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusCreated, toPantryItemResponse(item))
}

// List handles GET /api/v1/pantry.
func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writePantryItems(w, items)
}

// Get handles GET /api/v1/pantry/{id}.
func (h *PantryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, toPantryItemResponse(item))
}

// Update handles PUT /api/v1/pantry/{id}.
func (h *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req pantryItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.svc.Update(r.Context(), userID, id, toItemInput(req))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, toPantryItemResponse(item))
}

// Remove handles DELETE /api/v1/pantry/{id}.
func (h *PantryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), userID, id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

// Expiring handles GET /api/v1/pantry/expiring.
func (h *PantryHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.svc.Expiring(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writePantryItems(w, items)
}

// Cleanup handles POST /api/v1/pantry/cleanup.
func (h *PantryHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	removed, err := h.svc.Cleanup(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"removed": removed})
}

// Stats handles GET /api/v1/pantry/stats.
func (h *PantryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, pantryStatsResponse{
		TotalItems:   stats.TotalItems,
		ExpiredItems: stats.ExpiredItems,
		ExpiringSoon: stats.ExpiringSoon,
		ByCategory:   stats.ByCategory,
	})
}
