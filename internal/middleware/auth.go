package middleware

import (
	"context"
	"net/http"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// Auth verifies the session cookie and attaches the session to the
// request context. Requests without a valid logged-in session get 401.
func Auth(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Read(r)
			if err != nil || !sess.IsLoggedIn {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated callers that do not hold the Admin
// role. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSession(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if sess.Role != models.RoleAdmin {
			http.Error(w, "Forbidden: Admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession extracts the session placed on the context by Auth.
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok
}
