// internal/app/features/tasks/update.go
package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	assignmentstore "github.com/crackenhq/cracken/internal/app/store/assignments"
	taskstore "github.com/crackenhq/cracken/internal/app/store/tasks"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

type updateTaskRequest struct {
	Name     *string `json:"name"`
	Emoji    *string `json:"emoji"`
	Category *string `json:"category"`
}

// HandleUpdateTask applies a partial update. Absent fields are left alone.
// PATCH /api/v1/groups/{groupID}/tasks/{taskID}
func (h *Handler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		apierrors.Unauthorized(w, "could not validate credentials")
		return
	}
	groupID, ok := urlID(r, "groupID")
	if !ok {
		apierrors.BadRequest(w, "invalid group id")
		return
	}
	taskID, ok := urlID(r, "taskID")
	if !ok {
		apierrors.BadRequest(w, "invalid task id")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			apierrors.BadRequest(w, "name cannot be empty")
			return
		}
		req.Name = &trimmed
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := grouppolicy.RequireMember(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking group membership", err)
		return
	}

	task, err := h.Tasks.Update(ctx, groupID, taskID, taskstore.UpdateParams{
		Name:     req.Name,
		Emoji:    req.Emoji,
		Category: req.Category,
	})
	if err != nil {
		h.ErrLog.Write(w, "updating task", err)
		return
	}
	assignees, err := assignmentstore.ListUserIDs(ctx, h.DB, task.ID)
	if err != nil {
		h.ErrLog.Write(w, "loading task assignees", err)
		return
	}

	h.Log.Info("task updated",
		zap.Int64("group_id", groupID),
		zap.Int64("task_id", taskID),
		zap.Int64("user_id", u.ID))
	respondJSON(w, http.StatusOK, toTaskResponse(task, assignees))
}
