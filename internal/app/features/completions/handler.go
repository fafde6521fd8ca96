// internal/app/features/completions/handler.go
package completions

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	completionstore "github.com/crackenhq/cracken/internal/app/store/completions"
	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	"github.com/crackenhq/cracken/internal/domain/models"
)

// Handler is the shared dependency container for the completions feature.
type Handler struct {
	DB          *sqldb.DB
	Completions *completionstore.Store
	ErrLog      *apierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *sqldb.DB, completions *completionstore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Completions: completions,
		ErrLog:      errLog,
		Log:         logger,
	}
}

type completionResponse struct {
	ID          int64  `json:"id"`
	TaskID      int64  `json:"task_id"`
	UserID      int64  `json:"user_id"`
	GroupID     int64  `json:"group_id"`
	CompletedAt string `json:"completed_at"`
}

func toCompletionResponse(c models.Completion) completionResponse {
	return completionResponse{
		ID:          c.ID,
		TaskID:      c.TaskID,
		UserID:      c.UserID,
		GroupID:     c.GroupID,
		CompletedAt: c.CompletedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryID parses an optional integer query parameter.
func queryID(r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}
