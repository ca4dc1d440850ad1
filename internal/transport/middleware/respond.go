package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// errorBody mirrors the transport error envelope for responses written
// before a request reaches a handler.
type errorBody struct {
	Success bool         `json:"success"`
	Error   errorDetails `json:"error"`
}

type errorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	ErrorID string `json:"error_id"`
}

func writeErrorEnvelope(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetails{
			Code:    code,
			Message: message,
			ErrorID: uuid.New().String(),
		},
	})
}
