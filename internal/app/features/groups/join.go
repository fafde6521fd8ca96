// internal/app/features/groups/join.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

type joinGroupRequest struct {
	InviteCode string `json:"invite_code"`
}

// HandleJoinGroup adds the caller to the group carrying the invite code.
// POST /api/v1/groups/join
//
// An unknown code reads as not-found; joining a group the caller already
// belongs to is a conflict.
func (h *Handler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		apierrors.Unauthorized(w, "could not validate credentials")
		return
	}

	var req joinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	req.InviteCode = strings.TrimSpace(req.InviteCode)
	if req.InviteCode == "" {
		apierrors.BadRequest(w, "invite_code is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.Join(ctx, req.InviteCode, u.ID)
	if err != nil {
		h.ErrLog.Write(w, "joining group", err)
		return
	}

	h.Log.Info("member joined group",
		zap.Int64("group_id", g.ID),
		zap.Int64("user_id", u.ID))
	respondJSON(w, http.StatusOK, toGroupResponse(g))
}
