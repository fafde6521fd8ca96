// internal/app/features/tasks/create.go
package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	taskstore "github.com/crackenhq/cracken/internal/app/store/tasks"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

type createTaskRequest struct {
	Name     string  `json:"name"`
	Emoji    *string `json:"emoji"`
	Category *string `json:"category"`
	// nil means "assign to all current members"; an empty list means nobody.
	AssignedUserIDs []int64 `json:"assigned_user_ids"`
}

// HandleCreateTask creates a task in the group. Any member may create tasks.
// POST /api/v1/groups/{groupID}/tasks
//
// Without an explicit assignee list the task is assigned to every current
// member, a snapshot taken now rather than a live binding. Explicit lists
// must be a subset of current membership or the whole creation fails,
// listing the offending ids.
func (h *Handler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
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

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apierrors.BadRequest(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := grouppolicy.RequireMember(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking group membership", err)
		return
	}

	task, assignees, err := h.Tasks.Create(ctx, groupID, taskstore.CreateParams{
		Name:            req.Name,
		Emoji:           req.Emoji,
		Category:        req.Category,
		AssignedUserIDs: req.AssignedUserIDs,
	})
	if err != nil {
		h.ErrLog.Write(w, "creating task", err)
		return
	}

	h.Log.Info("task created",
		zap.Int64("group_id", groupID),
		zap.Int64("task_id", task.ID),
		zap.Int64("created_by", u.ID))
	respondJSON(w, http.StatusCreated, toTaskResponse(task, assignees))
}
