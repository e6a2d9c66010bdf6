package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbelt-labs/dmaic/internal/auth"
	"github.com/greenbelt-labs/dmaic/internal/server/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	handlers := NewHandlers(auth.NewService(fixture.Store), fixture.Store, fixture.SessionStore)
	return handlers, fixture
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "creates account and signs in",
			body:       `{"email":"ana@acme.com","password":"Secret123","name":"Ana","company":"Acme"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "rejects weak password",
			body:       `{"email":"ana@acme.com","password":"short"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects malformed email",
			body:       `{"email":"not-an-email","password":"Secret123"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects missing name",
			body:       `{"email":"ana@acme.com","password":"Secret123","name":"  "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects invalid body",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.NotEmpty(t, rec.Result().Cookies(), "register should set a session cookie")
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, _ := setupTestHandlers(t)
	body := `{"email":"ana@acme.com","password":"Secret123","name":"Ana"}`

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.Register(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	_, err := auth.NewService(fixture.Store).Register("ana@acme.com", "Secret123", "Ana", "")
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid credentials",
			body:       `{"email":"ana@acme.com","password":"Secret123"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       `{"email":"ana@acme.com","password":"Wrong1234"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown email",
			body:       `{"email":"nobody@acme.com","password":"Secret123"}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLogin_DoesNotLeakPasswordHash(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	_, err := auth.NewService(fixture.Store).Register("ana@acme.com", "Secret123", "Ana", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"ana@acme.com","password":"Secret123"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "ana@acme.com", out["email"])
}

func TestLogout(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMe(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	u := fixture.SeedUser("ana@acme.com")

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = features.AuthenticatedRequest(req, u.ID)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, u.ID, out["id"])
}

func TestMe_UnknownUser(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = features.AuthenticatedRequest(req, "missing")
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
