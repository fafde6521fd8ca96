// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/crackenhq/cracken/internal/app/store/groups"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// HandleListGroups returns the groups the caller belongs to.
// GET /api/v1/groups
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		apierrors.Unauthorized(w, "could not validate credentials")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	gs, err := groupstore.ListForUser(ctx, h.DB, u.ID)
	if err != nil {
		h.ErrLog.Write(w, "listing groups", err)
		return
	}

	resp := make([]groupResponse, 0, len(gs))
	for _, g := range gs {
		resp = append(resp, toGroupResponse(g))
	}
	respondJSON(w, http.StatusOK, resp)
}
