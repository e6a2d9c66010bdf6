// Package reports provides the per-project summary report endpoint.
package reports

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// SetupRoutes configures the report routes. All require a session.
func SetupRoutes(router chi.Router, st store.Store, sessionStore sessions.Store) {
	h := NewHandlers(st)

	router.Group(func(r chi.Router) {
		r.Use(common.RequireAuth(sessionStore))
		r.Get("/api/projects/{projectID}/report", h.ProjectReport)
	})
}
