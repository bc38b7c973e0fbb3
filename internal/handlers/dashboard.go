package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pacsboard/pacsboard/internal/services"
)

// DashboardHandler serves the composite daily statistics view.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns today's statistics. Individual failed aggregates are
// logged by the service and reported as zeros.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboardService.Overview(r.Context()))
}

// LiveModalities returns the distinct modalities from the live series
// table, wrapped the way the original dashboard consumed them.
func (h *DashboardHandler) LiveModalities(w http.ResponseWriter, r *http.Request) {
	values, err := h.dashboardService.LiveModalities(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch live modalities")
		respondError(w, http.StatusInternalServerError, "Failed to fetch modalities")
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"modalities": values})
}
