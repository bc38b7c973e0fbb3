// Package session implements the server-side login session: an opaque
// store keyed by a signed cookie token. The store holds the session
// payload; the cookie only carries a signed reference to it.
package session

import (
	"context"
	"errors"
	"time"
)

// Session is the logical payload attached to a logged-in request.
type Session struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	UserID     int    `json:"user_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
}

// ErrNotFound is returned when no session exists for a key, including
// expired sessions.
var ErrNotFound = errors.New("session not found")

// Store persists session payloads under opaque keys with a TTL.
type Store interface {
	Get(ctx context.Context, key string) (*Session, error)
	Set(ctx context.Context, key string, sess *Session, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
