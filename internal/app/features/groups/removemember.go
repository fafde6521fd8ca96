// internal/app/features/groups/removemember.go
package groups

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	membershipstore "github.com/crackenhq/cracken/internal/app/store/memberships"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// HandleRemoveMember removes another member from the group (admin only).
// DELETE /api/v1/groups/{groupID}/members/{userID}
//
// An admin removing themself gets leave semantics: succession, or group
// deletion when they are the last member. The removed member's task
// assignments are kept as history.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
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
	targetID, ok := urlID(r, "userID")
	if !ok {
		apierrors.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := grouppolicy.RequireAdmin(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking admin role", err)
		return
	}

	// Target must currently be a member; absence surfaces as 404.
	if _, err := membershipstore.GetRole(ctx, h.DB, groupID, targetID); err != nil {
		h.ErrLog.Write(w, "checking target membership", err)
		return
	}

	groupDeleted, err := h.Groups.RemoveMember(ctx, groupID, targetID)
	if err != nil {
		h.ErrLog.Write(w, "removing group member", err)
		return
	}

	h.Log.Info("member removed from group",
		zap.Int64("group_id", groupID),
		zap.Int64("user_id", targetID),
		zap.Int64("removed_by", u.ID),
		zap.Bool("group_deleted", groupDeleted))
	w.WriteHeader(http.StatusNoContent)
}
