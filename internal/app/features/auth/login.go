// internal/app/features/auth/login.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/crackenhq/cracken/internal/app/store/users"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns a bearer token.
// POST /api/v1/auth/login
//
// Unknown email and wrong password produce the same 401 so callers cannot
// probe which addresses are registered.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			apierrors.Unauthorized(w, "incorrect email or password")
			return
		}
		h.ErrLog.Write(w, "loading user for login", err)
		return
	}
	if !sysauth.CheckPassword(req.Password, u.HashedPassword) {
		apierrors.Unauthorized(w, "incorrect email or password")
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		h.ErrLog.Write(w, "issuing token", err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
