// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	authfeature "github.com/crackenhq/cracken/internal/app/features/auth"
	completionsfeature "github.com/crackenhq/cracken/internal/app/features/completions"
	groupsfeature "github.com/crackenhq/cracken/internal/app/features/groups"
	healthfeature "github.com/crackenhq/cracken/internal/app/features/health"
	tasksfeature "github.com/crackenhq/cracken/internal/app/features/tasks"
	assignmentstore "github.com/crackenhq/cracken/internal/app/store/assignments"
	completionstore "github.com/crackenhq/cracken/internal/app/store/completions"
	groupstore "github.com/crackenhq/cracken/internal/app/store/groups"
	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	taskstore "github.com/crackenhq/cracken/internal/app/store/tasks"
	userstore "github.com/crackenhq/cracken/internal/app/store/users"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	sysauth "github.com/crackenhq/cracken/internal/app/system/auth"
	"github.com/crackenhq/cracken/internal/app/system/invitecode"
	"github.com/crackenhq/cracken/internal/app/system/requestlog"
)

// BuildHandler constructs the root HTTP handler.
//
// All stores share the one DB handle. Feature routers are mounted under
// /api/v1; the bearer-token middleware is passed to each feature so public
// and protected routes are decided feature-side.
func BuildHandler(cfg Config, db *sqldb.DB, logger *zap.Logger) (http.Handler, error) {
	tokens, err := sysauth.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiry, logger)
	if err != nil {
		return nil, err
	}

	users := userstore.New(db)
	groups := groupstore.New(db, invitecode.New())
	tasks := taskstore.New(db)
	assignments := assignmentstore.New(db)
	completions := completionstore.New(db)

	errLog := apierrors.NewErrorLogger(logger)
	mw := sysauth.NewMiddleware(tokens, users)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestlog.Middleware(logger))

	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(db, logger)))
		api.Mount("/auth", authfeature.Routes(authfeature.NewHandler(users, tokens, errLog, logger), mw))

		taskRoutes := tasksfeature.Routes(tasksfeature.NewHandler(db, tasks, assignments, errLog, logger), mw)
		completionRoutes := completionsfeature.Routes(completionsfeature.NewHandler(db, completions, errLog, logger), mw)
		api.Mount("/groups", groupsfeature.Routes(groupsfeature.NewHandler(db, groups, errLog, logger), mw, taskRoutes, completionRoutes))
	})

	return r, nil
}
