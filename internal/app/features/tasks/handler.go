// internal/app/features/tasks/handler.go
package tasks

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	assignmentstore "github.com/crackenhq/cracken/internal/app/store/assignments"
	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	taskstore "github.com/crackenhq/cracken/internal/app/store/tasks"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	"github.com/crackenhq/cracken/internal/domain/models"
)

// Handler is the shared dependency container for the tasks feature: task
// CRUD within a group plus assignment replacement.
type Handler struct {
	DB          *sqldb.DB
	Tasks       *taskstore.Store
	Assignments *assignmentstore.Store
	ErrLog      *apierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *sqldb.DB, tasks *taskstore.Store, assignments *assignmentstore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Tasks:       tasks,
		Assignments: assignments,
		ErrLog:      errLog,
		Log:         logger,
	}
}

// taskResponse is the task shape including its current assignee set.
type taskResponse struct {
	ID              int64   `json:"id"`
	GroupID         int64   `json:"group_id"`
	Name            string  `json:"name"`
	Emoji           *string `json:"emoji"`
	Category        *string `json:"category"`
	CreatedAt       string  `json:"created_at"`
	IsActive        bool    `json:"is_active"`
	AssignedUserIDs []int64 `json:"assigned_user_ids"`
}

func toTaskResponse(t models.Task, assignees []int64) taskResponse {
	if assignees == nil {
		assignees = []int64{}
	}
	return taskResponse{
		ID:              t.ID,
		GroupID:         t.GroupID,
		Name:            t.Name,
		Emoji:           t.Emoji,
		Category:        t.Category,
		CreatedAt:       t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		IsActive:        t.IsActive,
		AssignedUserIDs: assignees,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// urlID parses an integer URL parameter, 0 and false on malformed input.
func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
