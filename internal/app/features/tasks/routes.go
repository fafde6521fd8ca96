// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/go-chi/chi/v5"

	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
)

// Routes is mounted under /groups/{groupID}/tasks.
func Routes(h *Handler, mw *sysauth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(mw.RequireSignedIn)

		pr.Post("/", h.HandleCreateTask)
		pr.Get("/", h.HandleListTasks)

		pr.Get("/{taskID}", h.HandleViewTask)
		pr.Patch("/{taskID}", h.HandleUpdateTask)
		pr.Delete("/{taskID}", h.HandleDeleteTask)
		pr.Put("/{taskID}/assignments", h.HandleReplaceAssignments)
	})

	return r
}
