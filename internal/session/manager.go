package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager issues and reads the session cookie. The cookie value is an
// HS256-signed token whose subject is the random session key; the payload
// itself only ever lives in the Store.
type Manager struct {
	store      Store
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

type cookieClaims struct {
	jwt.RegisteredClaims
}

// NewManager creates a session manager.
func NewManager(store Store, secret []byte, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:      store,
		secret:     secret,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Create stores a new session and sets the cookie on the response.
func (m *Manager) Create(w http.ResponseWriter, r *http.Request, sess *Session) error {
	key := uuid.NewString()

	if err := m.store.Set(r.Context(), key, sess, m.ttl); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   key,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the session for the request, or ErrNotFound when there is
// no cookie, the token does not verify, or the stored session expired.
func (m *Manager) Read(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrNotFound
	}

	key, err := m.verify(cookie.Value)
	if err != nil {
		return nil, ErrNotFound
	}

	return m.store.Get(r.Context(), key)
}

// Destroy removes the stored session and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		if key, err := m.verify(cookie.Value); err == nil {
			if err := m.store.Delete(r.Context(), key); err != nil {
				return fmt.Errorf("deleting session: %w", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) verify(tokenString string) (string, error) {
	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.Subject, nil
}
