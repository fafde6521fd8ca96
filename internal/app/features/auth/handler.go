// internal/app/features/auth/handler.go
package auth

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	userstore "github.com/crackenhq/cracken/internal/app/store/users"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
)

// Handler is the shared dependency container for the auth feature:
// registration, login, and the current-user endpoint.
type Handler struct {
	Users  *userstore.Store
	Tokens *sysauth.TokenManager
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, tokens *sysauth.TokenManager, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Tokens: tokens,
		ErrLog: errLog,
		Log:    logger,
	}
}

// tokenResponse is the body returned by register and login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userResponse is the password-free user shape.
type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
