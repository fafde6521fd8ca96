// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/domain/models"
)

// ErrInvalidToken covers every way a bearer token can fail verification.
var ErrInvalidToken = errors.New("could not validate credentials")

// User is what we inject into r.Context() for signed-in requests.
type User struct {
	ID    int64
	Name  string
	Email string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the request's user and a "found?" flag.
func CurrentUser(r *http.Request) (*User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*User)
	return u, ok
}

// UserFetcher loads fresh user data for each verified token, so deleted
// accounts and profile changes take effect immediately.
type UserFetcher interface {
	GetByID(ctx context.Context, id int64) (models.User, error)
}

// TokenManager signs and verifies the opaque bearer tokens carrying a user
// identifier.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager constructs a TokenManager. The signing key must be
// non-empty; short keys are tolerated with a warning for local development.
func NewTokenManager(secret string, expiry time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry}, nil
}

// Issue returns a signed token for the user. The subject claim is the user
// id rendered as a string.
func (tm *TokenManager) Issue(u models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(u.ID, 10),
		"email": u.Email,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(tm.expiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify parses the token and returns the user id it carries.
func (tm *TokenManager) Verify(token string) (int64, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (interface{}, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// Middleware authenticates bearer tokens and injects the user into context.
type Middleware struct {
	tokens *TokenManager
	users  UserFetcher
}

func NewMiddleware(tokens *TokenManager, users UserFetcher) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// RequireSignedIn rejects requests without a valid bearer token for an
// existing user, and otherwise injects the user into the request context.
func (m *Middleware) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			unauthorized(w)
			return
		}
		id, err := m.tokens.Verify(raw)
		if err != nil {
			unauthorized(w)
			return
		}
		u, err := m.users.GetByID(r.Context(), id)
		if err != nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, withUser(r, &User{ID: u.ID, Name: u.Name, Email: u.Email}))
	})
}

// WithTestUser injects a user directly into the request context.
// Handler tests use this to bypass token verification.
func WithTestUser(r *http.Request, u *User) *http.Request {
	return withUser(r, u)
}

// helpers

func withUser(r *http.Request, u *User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"could not validate credentials"}`))
}
