// internal/app/features/tasks/delete.go
package tasks

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// HandleDeleteTask soft-deletes a task. Admin only. The task keeps its
// assignment rows and completion history; it just stops showing up in
// default listings and refuses new completions.
// DELETE /api/v1/groups/{groupID}/tasks/{taskID}
func (h *Handler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
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

	if _, err := grouppolicy.RequireAdmin(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking group admin", err)
		return
	}

	if err := h.Tasks.SoftDelete(ctx, groupID, taskID); err != nil {
		h.ErrLog.Write(w, "deleting task", err)
		return
	}

	h.Log.Info("task deleted",
		zap.Int64("group_id", groupID),
		zap.Int64("task_id", taskID),
		zap.Int64("user_id", u.ID))
	w.WriteHeader(http.StatusNoContent)
}
