// internal/app/features/groups/view.go
package groups

import (
	"context"
	"net/http"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// HandleGetGroup returns a group snapshot to its members.
// GET /api/v1/groups/{groupID}
func (h *Handler) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := grouppolicy.RequireMember(ctx, h.DB, groupID, u.ID)
	if err != nil {
		h.ErrLog.Write(w, "loading group", err)
		return
	}

	respondJSON(w, http.StatusOK, toGroupResponse(g))
}
