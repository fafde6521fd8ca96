// internal/app/features/auth/register.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// HandleRegister creates an account and returns a bearer token for it.
// POST /api/v1/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		apierrors.BadRequest(w, "invalid email address")
		return
	}
	if len(req.Password) < 8 {
		apierrors.BadRequest(w, "password must be at least 8 characters")
		return
	}
	if req.Name == "" {
		apierrors.BadRequest(w, "name is required")
		return
	}

	hash, err := sysauth.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.Write(w, "hashing password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, hash, req.Name)
	if err != nil {
		h.ErrLog.Write(w, "creating user", err)
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		h.ErrLog.Write(w, "issuing token", err)
		return
	}

	h.Log.Info("user registered", zap.Int64("user_id", u.ID))
	respondJSON(w, http.StatusCreated, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
