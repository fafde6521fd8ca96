// internal/app/features/health/handler_test.go
package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/features/health"
	"github.com/crackenhq/cracken/internal/testutil"
)

func TestServe_Healthy(t *testing.T) {
	db := testutil.NewTestDB(t)
	handler := health.NewHandler(db, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Status != "healthy" || body.Database != "connected" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestServe_DatabaseDown(t *testing.T) {
	db := testutil.NewTestDB(t)
	handler := health.NewHandler(db, zap.NewNop())
	_ = db.Close()

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
