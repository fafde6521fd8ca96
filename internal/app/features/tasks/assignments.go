// internal/app/features/tasks/assignments.go
package tasks

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	assignmentstore "github.com/crackenhq/cracken/internal/app/store/assignments"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

type replaceAssignmentsRequest struct {
	UserIDs []int64 `json:"assigned_user_ids"`
}

// HandleReplaceAssignments swaps the task's assignee set for the given one in
// a single transaction. Every id must be a current member or nothing changes.
// An empty list leaves the task unassigned.
// PUT /api/v1/groups/{groupID}/tasks/{taskID}/assignments
func (h *Handler) HandleReplaceAssignments(w http.ResponseWriter, r *http.Request) {
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

	var req replaceAssignmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if req.UserIDs == nil {
		apierrors.BadRequest(w, "assigned_user_ids is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := grouppolicy.RequireMember(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking group membership", err)
		return
	}
	task, err := h.Tasks.GetByID(ctx, groupID, taskID)
	if err != nil {
		h.ErrLog.Write(w, "loading task", err)
		return
	}

	if err := h.Assignments.Replace(ctx, groupID, taskID, req.UserIDs); err != nil {
		h.ErrLog.Write(w, "replacing task assignments", err)
		return
	}
	assignees, err := assignmentstore.ListUserIDs(ctx, h.DB, taskID)
	if err != nil {
		h.ErrLog.Write(w, "loading task assignees", err)
		return
	}

	h.Log.Info("task assignments replaced",
		zap.Int64("group_id", groupID),
		zap.Int64("task_id", taskID),
		zap.Int("assignee_count", len(assignees)),
		zap.Int64("user_id", u.ID))
	respondJSON(w, http.StatusOK, toTaskResponse(task, assignees))
}
