// internal/app/features/completions/record.go
package completions

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

type recordCompletionRequest struct {
	TaskID int64 `json:"task_id"`
}

// HandleRecordCompletion appends a completion for the calling user. Any
// member may complete any of the group's active tasks, assigned to them or
// not.
// POST /api/v1/groups/{groupID}/completions
func (h *Handler) HandleRecordCompletion(w http.ResponseWriter, r *http.Request) {
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

	var req recordCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	if req.TaskID <= 0 {
		apierrors.BadRequest(w, "task_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := grouppolicy.RequireMember(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking group membership", err)
		return
	}

	completion, err := h.Completions.Record(ctx, groupID, req.TaskID, u.ID)
	if err != nil {
		h.ErrLog.Write(w, "recording completion", err)
		return
	}

	h.Log.Info("completion recorded",
		zap.Int64("group_id", groupID),
		zap.Int64("task_id", req.TaskID),
		zap.Int64("user_id", u.ID))
	respondJSON(w, http.StatusCreated, toCompletionResponse(completion))
}
