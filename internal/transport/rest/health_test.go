package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingerMock struct {
	err error
}

func (m *pingerMock) Ping(_ context.Context) error {
	return m.err
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{}, &pingerMock{}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_BothStoresUp(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{}, &pingerMock{}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestReady_DatabaseDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{err: errors.New("connection refused")}, &pingerMock{}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestReady_PreferenceStoreDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{}, &pingerMock{err: errors.New("no reachable servers")}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestHealth_ReportsComponents(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{}, &pingerMock{err: errors.New("no reachable servers")}, "v1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "down" {
		t.Errorf("expected overall status 'down', got %q", resp.Status)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("expected version v1.2.3, got %q", resp.Version)
	}
	if resp.Components["database"].Status != "ok" {
		t.Errorf("expected database ok, got %q", resp.Components["database"].Status)
	}
	if resp.Components["preference_store"].Status != "down" {
		t.Errorf("expected preference_store down, got %q", resp.Components["preference_store"].Status)
	}
	if resp.Components["database"].Latency == "" {
		t.Error("expected latency measurement")
	}
}

func TestHealth_NilPreferenceStore(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pingerMock{}, nil, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := resp.Components["preference_store"]; ok {
		t.Error("expected no preference_store component when not configured")
	}
}
