// internal/app/features/groups/create.go
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

type createGroupRequest struct {
	Name string `json:"name"`
}

// HandleCreateGroup creates a group with the caller as its admin.
// POST /api/v1/groups
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		apierrors.Unauthorized(w, "could not validate credentials")
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apierrors.BadRequest(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := h.Groups.Create(ctx, req.Name, u.ID)
	if err != nil {
		h.ErrLog.Write(w, "creating group", err)
		return
	}

	h.Log.Info("group created",
		zap.Int64("group_id", g.ID),
		zap.Int64("creator_id", u.ID))
	respondJSON(w, http.StatusCreated, toGroupResponse(g))
}
