package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// SignedIn attaches the user to the request the way the auth middleware
// would, so handlers can be tested without minting tokens.
func SignedIn(r *http.Request, u models.User) *http.Request {
	return sysauth.WithTestUser(r, &sysauth.User{ID: u.ID, Name: u.Name, Email: u.Email})
}
