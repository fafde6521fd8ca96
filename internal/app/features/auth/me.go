// internal/app/features/auth/me.go
package auth

import (
	"net/http"

	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
)

// HandleMe returns the authenticated user's identity.
// GET /api/v1/auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		apierrors.Unauthorized(w, "could not validate credentials")
		return
	}
	respondJSON(w, http.StatusOK, userResponse{ID: u.ID, Email: u.Email, Name: u.Name})
}
