package session

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/greenbelt-labs/dmaic/internal/auth"
	"github.com/greenbelt-labs/dmaic/internal/server/features/common"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

// Handlers provides the account HTTP handlers.
type Handlers struct {
	auth         *auth.Service
	store        store.Store
	sessionStore sessions.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *auth.Service, st store.Store, sessionStore sessions.Store) *Handlers {
	return &Handlers{auth: svc, store: st, sessionStore: sessionStore}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Company  string `json:"company"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and signs it in.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.Decode(r, &req); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.auth.Register(req.Email, req.Password, req.Name, req.Company)
	if err != nil {
		common.FromError(w, err)
		return
	}

	if err := common.SignIn(h.sessionStore, w, r, u.ID); err != nil {
		common.Error(w, http.StatusInternalServerError, "failed to establish session")
		return
	}
	common.JSON(w, http.StatusCreated, u)
}

// Login verifies credentials and establishes the session cookie.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := common.Decode(r, &req); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.auth.Authenticate(req.Email, req.Password)
	if err != nil {
		common.FromError(w, err)
		return
	}

	if err := common.SignIn(h.sessionStore, w, r, u.ID); err != nil {
		common.Error(w, http.StatusInternalServerError, "failed to establish session")
		return
	}
	common.JSON(w, http.StatusOK, u)
}

// Logout clears the session.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := common.SignOut(h.sessionStore, w, r); err != nil {
		common.Error(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in account.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUser(common.UserID(r.Context()))
	if err != nil {
		common.FromError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, u)
}
