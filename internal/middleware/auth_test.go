package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/session"
)

func newAuthTestManager(t *testing.T) *session.Manager {
	t.Helper()
	store := session.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return session.NewManager(store, []byte("test-secret-key-at-least-32-bytes!!"), "test-session", time.Hour, false)
}

func loginAs(t *testing.T, manager *session.Manager, role string) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	sess := &session.Session{IsLoggedIn: true, UserID: 1, Username: "u", Role: role}
	require.NoError(t, manager.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), sess))
	return rec.Result().Cookies()
}

func protectedHandler(t *testing.T, wantRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSession(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantRole, sess.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingSession(t *testing.T) {
	manager := newAuthTestManager(t)
	handler := Auth(manager)(protectedHandler(t, ""))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/worklist", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthPassesValidSession(t *testing.T) {
	manager := newAuthTestManager(t)
	handler := Auth(manager)(protectedHandler(t, models.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/worklist", nil)
	for _, c := range loginAs(t, manager, models.RoleUser) {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminForbidsUserRole(t *testing.T) {
	manager := newAuthTestManager(t)
	handler := Auth(manager)(RequireAdmin(protectedHandler(t, models.RoleUser)))

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	for _, c := range loginAs(t, manager, models.RoleUser) {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdminRole(t *testing.T) {
	manager := newAuthTestManager(t)
	handler := Auth(manager)(RequireAdmin(protectedHandler(t, models.RoleAdmin)))

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	for _, c := range loginAs(t, manager, models.RoleAdmin) {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminWithoutAuthContext(t *testing.T) {
	handler := RequireAdmin(protectedHandler(t, ""))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
