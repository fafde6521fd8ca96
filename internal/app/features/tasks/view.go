// internal/app/features/tasks/view.go
package tasks

import (
	"context"
	"net/http"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	assignmentstore "github.com/crackenhq/cracken/internal/app/store/assignments"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// HandleViewTask returns a single task with its current assignee set.
// GET /api/v1/groups/{groupID}/tasks/{taskID}
func (h *Handler) HandleViewTask(w http.ResponseWriter, r *http.Request) {
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
	assignees, err := assignmentstore.ListUserIDs(ctx, h.DB, task.ID)
	if err != nil {
		h.ErrLog.Write(w, "loading task assignees", err)
		return
	}
	respondJSON(w, http.StatusOK, toTaskResponse(task, assignees))
}
