// Package server provides the DMAIC web server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/greenbelt-labs/dmaic/internal/server/notifier"
	"github.com/greenbelt-labs/dmaic/internal/server/router"
	"github.com/greenbelt-labs/dmaic/internal/snapshot"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// Server is the main web server.
type Server struct {
	store        store.Store
	sessionStore *sessions.CookieStore
	port         int
	snapshotDir  string
	watch        bool
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the web server.
type Config struct {
	Store             store.Store
	Port              int
	SessionSecret     string
	SessionMaxAgeDays int
	SnapshotDir       string
	Watch             bool
	Logger            *slog.Logger
}

// New creates a new server instance.
func New(cfg Config) *Server {
	maxAgeDays := cfg.SessionMaxAgeDays
	if maxAgeDays <= 0 {
		maxAgeDays = 30
	}
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * maxAgeDays)
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		store:        cfg.Store,
		sessionStore: sessionStore,
		port:         cfg.Port,
		snapshotDir:  cfg.SnapshotDir,
		watch:        cfg.Watch,
		logger:       cfg.Logger,
		notifier:     notifier.New(),
	}
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	router.SetupRoutes(r, s.store, s.sessionStore, s.notifier)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Sync snapshot files dropped into the snapshot directory.
	if s.watch && s.snapshotDir != "" {
		watcher := snapshot.NewWatcher(s.store, s.snapshotDir, s.logger)
		watcher.OnImport(func(snapshot.ImportResult) {
			s.notifier.Broadcast()
		})
		eg.Go(func() error {
			return watcher.Run(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
