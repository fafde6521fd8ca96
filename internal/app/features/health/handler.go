// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB  *sqldb.DB
	Log *zap.Logger
}

// NewHandler constructs a health Handler with the database and logger.
func NewHandler(db *sqldb.DB, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and {"status":"healthy","database":"connected"}.
// On DB failure: 503 with the status flipped and the error included.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "healthy",
		Database: "connected",
	}

	if err := h.DB.PingContext(ctx); err != nil {
		h.Log.Error("health-check: database ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
