// Package session provides the account endpoints: register, login, logout
// and current-user.
package session

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/greenbelt-labs/dmaic/internal/auth"
	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// SetupRoutes configures the account routes. Register and login are public;
// the rest require a session.
func SetupRoutes(router chi.Router, st store.Store, sessionStore sessions.Store) {
	h := NewHandlers(auth.NewService(st), st, sessionStore)

	router.Post("/api/register", h.Register)
	router.Post("/api/login", h.Login)

	router.Group(func(r chi.Router) {
		r.Use(common.RequireAuth(sessionStore))
		r.Post("/api/logout", h.Logout)
		r.Get("/api/me", h.Me)
	})
}
