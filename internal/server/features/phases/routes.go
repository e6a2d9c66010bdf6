// Package phases provides the per-phase tool endpoints: listing tools,
// saving tool data, running the numeric analyses and advancing phases.
package phases

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/server/notifier"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// SetupRoutes configures the phase routes. All require a session.
func SetupRoutes(router chi.Router, st store.Store, sessionStore sessions.Store, notify *notifier.Notifier) {
	h := NewHandlers(st, notify)

	router.Group(func(r chi.Router) {
		r.Use(common.RequireAuth(sessionStore))
		r.Get("/api/projects/{projectID}/phases", h.Overview)
		r.Post("/api/projects/{projectID}/advance", h.Advance)
		r.Get("/api/projects/{projectID}/phases/{phase}/tools", h.Tools)
		r.Put("/api/projects/{projectID}/phases/{phase}/tools/{toolKey}", h.SaveTool)
		r.Post("/api/projects/{projectID}/phases/{phase}/tools/{toolKey}/compute", h.Compute)
	})
}
