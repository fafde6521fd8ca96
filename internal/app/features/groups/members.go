// internal/app/features/groups/members.go
package groups

import (
	"context"
	"net/http"
	"time"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	membershipstore "github.com/crackenhq/cracken/internal/app/store/memberships"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// memberResponse is a membership row joined with the user's identity.
type memberResponse struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// HandleListMembers returns the group's members with roles and join dates.
// GET /api/v1/groups/{groupID}/members
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := grouppolicy.RequireMember(ctx, h.DB, groupID, u.ID); err != nil {
		h.ErrLog.Write(w, "checking group membership", err)
		return
	}

	members, err := membershipstore.ListByGroup(ctx, h.DB, groupID)
	if err != nil {
		h.ErrLog.Write(w, "listing group members", err)
		return
	}

	resp := make([]memberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, memberResponse{
			ID:       m.UserID,
			Email:    m.Email,
			Name:     m.Name,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}
