// Package dashboard provides the portfolio metrics endpoint and its SSE
// live-update stream.
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/server/notifier"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// SetupRoutes configures the dashboard routes. All require a session.
func SetupRoutes(router chi.Router, st store.Store, sessionStore sessions.Store, notify *notifier.Notifier) {
	h := NewHandlers(st, notify)

	router.Group(func(r chi.Router) {
		r.Use(common.RequireAuth(sessionStore))
		r.Get("/api/dashboard", h.Metrics)
		r.Get("/api/dashboard/updates", h.Updates)
	})
}
