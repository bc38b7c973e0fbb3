package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pacsboard/pacsboard/internal/middleware"
	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/services"
	"github.com/pacsboard/pacsboard/internal/session"
)

// AuthHandler serves login, logout and the current-session probe.
type AuthHandler struct {
	userService *services.UserService
	sessions    *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions}
}

// Login verifies credentials and establishes a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Error().Err(err).Msg("Login failed")
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	sess := &session.Session{
		IsLoggedIn: true,
		UserID:     user.UserID,
		Username:   user.Username,
		FullName:   user.FullName,
		Role:       user.Role,
	}
	if err := h.sessions.Create(w, r, sess); err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, sess)
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		log.Error().Err(err).Msg("Failed to destroy session")
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Cache-Control", "no-store, max-age=0")
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the current session payload, or isLoggedIn=false when there
// is none. This endpoint never rejects; the SPA shell polls it.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Read(r)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]bool{"isLoggedIn": false})
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

// ResetPassword changes the calling user's own password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if len(req.NewPassword) < 6 {
		respondError(w, http.StatusBadRequest, "New password must be at least 6 characters")
		return
	}

	err := h.userService.ResetPassword(r.Context(), sess.UserID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid current password")
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case err != nil:
		log.Error().Err(err).Int("user_id", sess.UserID).Msg("Password reset failed")
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
	}
}
