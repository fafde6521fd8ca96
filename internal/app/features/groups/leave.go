// internal/app/features/groups/leave.go
package groups

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// HandleLeaveGroup removes the caller from the group.
// POST /api/v1/groups/{groupID}/leave
//
// A departing admin is replaced by the longest-standing remaining member;
// the last member leaving deletes the group and everything under it.
func (h *Handler) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	groupDeleted, err := h.Groups.RemoveMember(ctx, groupID, u.ID)
	if err != nil {
		h.ErrLog.Write(w, "leaving group", err)
		return
	}

	h.Log.Info("member left group",
		zap.Int64("group_id", groupID),
		zap.Int64("user_id", u.ID),
		zap.Bool("group_deleted", groupDeleted))
	w.WriteHeader(http.StatusNoContent)
}
