package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// All endpoints answer with the same envelope: {"success": true, "data": ...}
// on the happy path and {"success": false, "error": {...}} otherwise. Error
// responses carry an error_id that is also logged, so a support ticket can be
// matched to a log line without exposing internals to the client.

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	ErrorID string        `json:"error_id"`
	Details []fieldDetail `json:"details,omitempty"`
}

type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string, details []fieldDetail) string {
	errorID := uuid.NewString()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Success: false,
		Error: errorBody{
			Code:    code,
			Message: message,
			ErrorID: errorID,
			Details: details,
		},
	})
	return errorID
}

// respondError translates domain errors into envelope responses. Handlers that
// need a more specific code for a sentinel (registration conflicts, user
// lookups) map it before calling this.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		details := make([]fieldDetail, 0, len(vErr.Errors))
		for _, fe := range vErr.Errors {
			details = append(details, fieldDetail{Field: fe.Field, Message: fe.Message})
		}
		writeError(w, http.StatusBadRequest, "ValidationError", "request validation failed", details)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "InvalidTokenError", "token is invalid or expired", nil)
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "AuthenticationError", "authentication required", nil)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "ForbiddenError", "operation not allowed", nil)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NotFoundError", "resource not found", nil)
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "ConflictError", "resource already exists", nil)
	default:
		errorID := writeError(w, http.StatusInternalServerError, "InternalServerError", "internal server error", nil)
		log.ErrorContext(r.Context(), "unhandled error", "error", err, "error_id", errorID, "path", r.URL.Path)
	}
}

// decodeBody parses a JSON request body into dst. A false return means the
// error response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "invalid request body", nil)
		return false
	}
	return true
}
