// internal/app/features/tasks/list.go
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

// HandleListTasks lists the group's tasks, newest first. Soft-deleted tasks
// are hidden unless include_inactive=true is passed.
// GET /api/v1/groups/{groupID}/tasks
func (h *Handler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
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
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := grouppolicy.RequireMember(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking group membership", err)
		return
	}

	list, err := h.Tasks.List(ctx, groupID, includeInactive)
	if err != nil {
		h.ErrLog.Write(w, "listing tasks", err)
		return
	}

	out := make([]taskResponse, 0, len(list))
	for _, t := range list {
		assignees, err := assignmentstore.ListUserIDs(ctx, h.DB, t.ID)
		if err != nil {
			h.ErrLog.Write(w, "loading task assignees", err)
			return
		}
		out = append(out, toTaskResponse(t, assignees))
	}
	respondJSON(w, http.StatusOK, out)
}
