// Package projects provides CRUD endpoints for DMAIC projects.
package projects

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/server/notifier"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// SetupRoutes configures the project routes. All require a session.
func SetupRoutes(router chi.Router, st store.Store, sessionStore sessions.Store, notify *notifier.Notifier) {
	h := NewHandlers(st, notify)

	router.Group(func(r chi.Router) {
		r.Use(common.RequireAuth(sessionStore))
		r.Get("/api/projects", h.List)
		r.Post("/api/projects", h.Create)
		r.Get("/api/projects/{projectID}", h.Get)
		r.Patch("/api/projects/{projectID}", h.Update)
		r.Delete("/api/projects/{projectID}", h.Delete)
	})
}
