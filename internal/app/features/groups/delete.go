// internal/app/features/groups/delete.go
package groups

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// HandleDeleteGroup deletes the group and everything under it.
// DELETE /api/v1/groups/{groupID}
//
// Only the group's creator pointer may delete it; succession keeps that
// pointer on the current admin.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
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

	if _, err := grouppolicy.RequireCreator(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking group creator", err)
		return
	}

	if err := h.Groups.Delete(ctx, groupID); err != nil {
		h.ErrLog.Write(w, "deleting group", err)
		return
	}

	h.Log.Info("group deleted",
		zap.Int64("group_id", groupID),
		zap.Int64("deleted_by", u.ID))
	w.WriteHeader(http.StatusNoContent)
}
