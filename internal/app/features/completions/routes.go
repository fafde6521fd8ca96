// internal/app/features/completions/routes.go
package completions

import (
	"github.com/go-chi/chi/v5"

	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
)

// Routes is mounted under /groups/{groupID}/completions.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireSignedIn)

		pr.Post("/", h.HandleRecordCompletion)
		pr.Get("/", h.HandleListCompletions)
	})

	return r
}
