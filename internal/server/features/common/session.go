package common

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie name holding the login session.
const SessionName = "dmaic_session"

// sessionUserKey is the session value key for the account ID.
const sessionUserKey = "user_id"

type userIDKey struct{}

// SignIn stores the user ID in the session cookie.
func SignIn(store sessions.Store, w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := store.Get(r, SessionName)
	sess.Values[sessionUserKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func SignOut(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	sess, _ := store.Get(r, SessionName)
	delete(sess.Values, sessionUserKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// SessionUserID extracts the signed-in user ID from the request, if any.
func SessionUserID(store sessions.Store, r *http.Request) (string, bool) {
	sess, err := store.Get(r, SessionName)
	if err != nil {
		return "", false
	}
	id, ok := sess.Values[sessionUserKey].(string)
	return id, ok && id != ""
}

// RequireAuth is middleware that rejects unauthenticated requests and puts
// the user ID into the request context.
func RequireAuth(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := SessionUserID(store, r)
			if !ok {
				Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID returns the authenticated user ID placed by RequireAuth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
