// Package router sets up HTTP routes for the web server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	dashboardFeature "github.com/greenbelt-labs/dmaic/internal/server/features/dashboard"
	phasesFeature "github.com/greenbelt-labs/dmaic/internal/server/features/phases"
	projectsFeature "github.com/greenbelt-labs/dmaic/internal/server/features/projects"
	reportsFeature "github.com/greenbelt-labs/dmaic/internal/server/features/reports"
	sessionFeature "github.com/greenbelt-labs/dmaic/internal/server/features/session"
	"github.com/greenbelt-labs/dmaic/internal/server/notifier"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// SetupRoutes configures all routes for the server.
func SetupRoutes(
	router chi.Router,
	st store.Store,
	sessionStore *sessions.CookieStore,
	notify *notifier.Notifier,
) {
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	sessionFeature.SetupRoutes(router, st, sessionStore)
	projectsFeature.SetupRoutes(router, st, sessionStore, notify)
	phasesFeature.SetupRoutes(router, st, sessionStore, notify)
	dashboardFeature.SetupRoutes(router, st, sessionStore, notify)
	reportsFeature.SetupRoutes(router, st, sessionStore)
}
