package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/project-tracker/internal/audit"
	"github.com/frahmantamala/project-tracker/internal/auth"
	"github.com/frahmantamala/project-tracker/internal/connection"
	"github.com/frahmantamala/project-tracker/internal/cost"
	"github.com/frahmantamala/project-tracker/internal/doc"
	"github.com/frahmantamala/project-tracker/internal/note"
	"github.com/frahmantamala/project-tracker/internal/project"
	"github.com/frahmantamala/project-tracker/internal/rbac"
	"github.com/frahmantamala/project-tracker/internal/task"
	"github.com/frahmantamala/project-tracker/internal/timelog"
	"github.com/frahmantamala/project-tracker/internal/transport/middleware"
	"github.com/frahmantamala/project-tracker/internal/transport/swagger"
	"github.com/frahmantamala/project-tracker/internal/user"
)

// Handlers bundles every domain handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Project    *project.Handler
	RBAC       *rbac.Handler
	Note       *note.Handler
	Doc        *doc.Handler
	Connection *connection.Handler
	Cost       *cost.Handler
	Task       *task.Handler
	TimeLog    *timelog.Handler
	Audit      *audit.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestMeta)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/signup", h.Auth.Signup)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
		})

		// Everything else requires a valid bearer token
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/auth/me", h.Auth.Me)
			// Default role is display-only; this endpoint grants no project
			// access by itself.
			pr.Post("/auth/admin", h.Auth.CreateAdmin)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", h.User.List)
				ur.Post("/", h.User.Create)
				ur.Get("/{id}", h.User.Get)
				ur.Put("/{id}", h.User.Update)
				ur.Delete("/{id}", h.User.Delete)
			})

			pr.Route("/projects", func(sr chi.Router) {
				sr.Get("/", h.Project.List)
				sr.Post("/", h.Project.Create)
				sr.Get("/{id}", h.Project.Get)
				sr.Put("/{id}", h.Project.Update)
				sr.Delete("/{id}", h.Project.Delete)
			})

			pr.Route("/rbac", func(sr chi.Router) {
				sr.Get("/", h.RBAC.List)
				sr.Post("/", h.RBAC.Assign)
				sr.Get("/effective", h.RBAC.EffectiveRole)
				sr.Put("/{id}", h.RBAC.Update)
				sr.Delete("/{id}", h.RBAC.Delete)
			})

			pr.Route("/notes", func(sr chi.Router) {
				sr.Get("/", h.Note.List)
				sr.Post("/", h.Note.Create)
				sr.Get("/{id}", h.Note.Get)
				sr.Put("/{id}", h.Note.Update)
				sr.Delete("/{id}", h.Note.Delete)
			})

			pr.Route("/docs", func(sr chi.Router) {
				sr.Get("/", h.Doc.List)
				sr.Post("/", h.Doc.Create)
				sr.Get("/{id}", h.Doc.Get)
				sr.Put("/{id}", h.Doc.Update)
				sr.Delete("/{id}", h.Doc.Delete)
			})

			pr.Route("/connections", func(sr chi.Router) {
				sr.Get("/", h.Connection.List)
				sr.Post("/", h.Connection.Create)
				sr.Get("/{id}", h.Connection.Get)
				sr.Put("/{id}", h.Connection.Update)
				sr.Delete("/{id}", h.Connection.Delete)
			})

			pr.Route("/costs", func(sr chi.Router) {
				sr.Get("/", h.Cost.List)
				sr.Post("/", h.Cost.Create)
				sr.Get("/{id}", h.Cost.Get)
				sr.Put("/{id}", h.Cost.Update)
				sr.Delete("/{id}", h.Cost.Delete)
			})

			pr.Route("/tasks", func(sr chi.Router) {
				sr.Get("/", h.Task.List)
				sr.Post("/", h.Task.Create)
				sr.Get("/{id}", h.Task.Get)
				sr.Put("/{id}", h.Task.Update)
				sr.Delete("/{id}", h.Task.Delete)
			})

			pr.Route("/timelogs", func(sr chi.Router) {
				sr.Get("/", h.TimeLog.List)
				sr.Post("/", h.TimeLog.Create)
				sr.Get("/{id}", h.TimeLog.Get)
				sr.Put("/{id}", h.TimeLog.Update)
				sr.Delete("/{id}", h.TimeLog.Delete)
			})

			pr.Route("/auditlogs", func(sr chi.Router) {
				sr.Get("/", h.Audit.List)
				sr.Get("/{id}", h.Audit.Get)
			})
		})
	})
}
