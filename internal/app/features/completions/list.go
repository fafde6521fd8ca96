// internal/app/features/completions/list.go
package completions

import (
	"context"
	"net/http"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	completionstore "github.com/crackenhq/cracken/internal/app/store/completions"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// HandleListCompletions returns the group's completion history, newest
// first, optionally filtered by user_id and/or task_id. History outlives
// task soft-deletion and member departure.
// GET /api/v1/groups/{groupID}/completions
func (h *Handler) HandleListCompletions(w http.ResponseWriter, r *http.Request) {
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
	userID, ok := queryID(r, "user_id")
	if !ok {
		apierrors.BadRequest(w, "invalid user_id filter")
		return
	}
	taskID, ok := queryID(r, "task_id")
	if !ok {
		apierrors.BadRequest(w, "invalid task_id filter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := grouppolicy.RequireMember(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking group membership", err)
		return
	}

	list, err := h.Completions.List(ctx, groupID, completionstore.Filter{
		UserID: userID,
		TaskID: taskID,
	})
	if err != nil {
		h.ErrLog.Write(w, "listing completions", err)
		return
	}

	out := make([]completionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCompletionResponse(c))
	}
	respondJSON(w, http.StatusOK, out)
}
