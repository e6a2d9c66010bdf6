// Package features provides shared test utilities for feature handler tests.
package features

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/server/notifier"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// TestFixture holds all dependencies needed for feature handler tests.
type TestFixture struct {
	Store        *store.SQLiteStore
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore

	t *testing.T
}

// SetupTestFixture creates an in-memory store plus the surrounding
// server dependencies.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	return &TestFixture{
		Store:        st,
		Notifier:     notifier.New(),
		SessionStore: sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!")),
		t:            t,
	}
}

// SeedUser inserts a user and returns it.
func (f *TestFixture) SeedUser(email string) *store.User {
	f.t.Helper()
	u := &store.User{Email: email, Name: "Test User", PasswordHash: "hash"}
	require.NoError(f.t, f.Store.CreateUser(u))
	return u
}

// SeedProject inserts a project for the given user and returns it.
func (f *TestFixture) SeedProject(userID, name string) *store.Project {
	f.t.Helper()
	p := &store.Project{
		UserID:          userID,
		Name:            name,
		ExpectedSavings: 50000,
		StartDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(f.t, f.Store.CreateProject(p))
	return p
}

// AuthenticatedRequest stamps the request context with a signed-in user,
// the way RequireAuth does for real traffic.
func AuthenticatedRequest(r *http.Request, userID string) *http.Request {
	return r.WithContext(common.WithUserID(r.Context(), userID))
}

// RequestWithPathParam wraps a request with a chi URL param. Repeated calls
// accumulate params on the same route context.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}
