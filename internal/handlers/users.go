package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/services"
)

// UsersHandler is the Admin-only account administration endpoint. Role
// gating happens in the router middleware, not here.
type UsersHandler struct {
	userService *services.UserService
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(userService *services.UserService) *UsersHandler {
	return &UsersHandler{userService: userService}
}

// List returns every account without password hashes.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Create adds an account. All fields are required on create.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" || req.FullName == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !validRole(req.Role) {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	if _, err := h.userService.Create(r.Context(), &req); err != nil {
		if errors.Is(err, services.ErrConflict) {
			respondError(w, http.StatusConflict, "Username already exists")
			return
		}
		log.Error().Err(err).Msg("Failed to create user")
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
}

// Update edits an account. Password is optional; when omitted the stored
// hash is kept.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.FullName == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !validRole(req.Role) {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	err = h.userService.Update(r.Context(), id, &req)
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrConflict):
		respondError(w, http.StatusConflict, "Username already exists")
	case err != nil:
		log.Error().Err(err).Int("user_id", id).Msg("Failed to update user")
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		respondJSON(w, http.StatusOK, map[string]string{"message": "User updated successfully"})
	}
}

// Delete removes an account. Unknown ids return 404.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	err = h.userService.Delete(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	case err != nil:
		log.Error().Err(err).Int("user_id", id).Msg("Failed to delete user")
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
	}
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleUser
}
