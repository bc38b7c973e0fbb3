package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/pacsboard/pacsboard/internal/database"
	"github.com/pacsboard/pacsboard/internal/settings"
)

// SettingsHandler serves the database connection settings screen.
type SettingsHandler struct {
	store   *settings.Store
	sslMode string
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store *settings.Store, sslMode string) *SettingsHandler {
	return &SettingsHandler{store: store, sslMode: sslMode}
}

// Get returns the stored connection settings with the password blanked.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	current, err := h.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to read settings")
		respondError(w, http.StatusInternalServerError, "Failed to read settings")
		return
	}
	respondJSON(w, http.StatusOK, current)
}

// Save persists new connection settings; the password is encrypted before
// it touches disk. The new settings take effect on the next process
// start, since the pool is established once.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var incoming settings.DBSettings
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.store.Save(incoming); err != nil {
		log.Error().Err(err).Msg("Failed to save settings")
		respondError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Settings saved successfully"})
}

// TestConnection verifies candidate connection parameters with a
// throwaway single-connection pool before they are saved.
func (h *SettingsHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var req settings.DBSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	port, err := strconv.Atoi(req.DBPort)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid port")
		return
	}

	cfg := database.Config{
		Host:     req.DBHost,
		Port:     port,
		User:     req.DBUser,
		Password: req.DBPass,
		DBName:   req.DBName,
		SSLMode:  h.sslMode,
	}
	if err := database.TestConnection(r.Context(), cfg); err != nil {
		log.Warn().Err(err).Str("host", req.DBHost).Msg("Test connection failed")
		respondError(w, http.StatusInternalServerError, "Connection failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Connection successful"})
}
