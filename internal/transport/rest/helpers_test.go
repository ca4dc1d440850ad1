package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/pkg/ctxutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *errorBody      `json:"error"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// doRequest runs the handler against a JSON body and decodes the envelope.
// pathKV carries alternating path-value names and values for {wildcard}
// route segments.
func doRequest(t *testing.T, fn http.HandlerFunc, method, target, body string, userID uuid.UUID, pathKV ...string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != uuid.Nil {
		req = req.WithContext(ctxutil.WithUserID(req.Context(), userID))
	}
	for i := 0; i+1 < len(pathKV); i += 2 {
		req.SetPathValue(pathKV[i], pathKV[i+1])
	}
	rec := httptest.NewRecorder()

	fn(rec, req)

	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func requireErrorCode(t *testing.T, env envelope, code string) {
	t.Helper()
	if env.Success {
		t.Fatal("expected success=false")
	}
	if env.Error == nil {
		t.Fatal("expected error body")
	}
	if env.Error.Code != code {
		t.Errorf("expected code %q, got %q", code, env.Error.Code)
	}
	if env.Error.ErrorID == "" {
		t.Error("expected non-empty error_id")
	}
}
