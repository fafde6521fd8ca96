// internal/app/features/groups/routes.go
package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
)

// Routes builds the /groups router. The tasks and completions routers are
// mounted under /{groupID}; they carry their own auth middleware.
func Routes(h *Handler, mw *sysauth.Middleware, tasks, completions http.Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /groups requires authentication.
	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireSignedIn)

		pr.Post("/", h.HandleCreateGroup)
		pr.Get("/", h.HandleListGroups)
		pr.Post("/join", h.HandleJoinGroup)

		pr.Get("/{groupID}", h.HandleGetGroup)
		pr.Delete("/{groupID}", h.HandleDeleteGroup)
		pr.Get("/{groupID}/members", h.HandleListMembers)
		pr.Post("/{groupID}/leave", h.HandleLeaveGroup)
		pr.Delete("/{groupID}/members/{userID}", h.HandleRemoveMember)
	})

	r.Mount("/{groupID}/tasks", tasks)
	r.Mount("/{groupID}/completions", completions)

	return r
}
