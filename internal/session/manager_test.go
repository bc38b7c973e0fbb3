package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key-at-least-32-bytes!!")

func newTestManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewManager(store, testSecret, "test-session", time.Hour, false), store
}

func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCreateAndRead(t *testing.T) {
	m, _ := newTestManager(t)

	rec := httptest.NewRecorder()
	sess := &Session{IsLoggedIn: true, UserID: 7, Username: "jdoe", FullName: "J. Doe", Role: "Admin"}
	require.NoError(t, m.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, cookies[0].Value, "jdoe", "payload must not be readable from the cookie")

	got, err := m.Read(requestWithCookies(t, rec))
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestReadWithoutCookie(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Read(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadTamperedToken(t *testing.T) {
	m, _ := newTestManager(t)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), &Session{IsLoggedIn: true}))

	cookie := rec.Result().Cookies()[0]
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"})

	_, err := m.Read(req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadTokenSignedWithDifferentSecret(t *testing.T) {
	m, store := newTestManager(t)
	other := NewManager(store, []byte("another-secret-also-32-bytes-long!!"), "test-session", time.Hour, false)

	rec := httptest.NewRecorder()
	require.NoError(t, other.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), &Session{IsLoggedIn: true}))

	_, err := m.Read(requestWithCookies(t, rec))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDestroy(t *testing.T) {
	m, _ := newTestManager(t)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Create(rec, httptest.NewRequest(http.MethodPost, "/login", nil), &Session{IsLoggedIn: true, UserID: 1}))

	req := requestWithCookies(t, rec)
	destroyRec := httptest.NewRecorder()
	require.NoError(t, m.Destroy(destroyRec, req))

	// The replacement cookie must be expired.
	cleared := destroyRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)

	// The stored session must be gone even if the old cookie is replayed.
	_, err := m.Read(req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDestroyWithoutSessionIsHarmless(t *testing.T) {
	m, _ := newTestManager(t)
	rec := httptest.NewRecorder()
	assert.NoError(t, m.Destroy(rec, httptest.NewRequest(http.MethodPost, "/logout", nil)))
}
