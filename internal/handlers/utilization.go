package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/query"
	"github.com/pacsboard/pacsboard/internal/services"
)

// UtilizationHandler serves the PACS storage utilization list and its
// filter lookups.
type UtilizationHandler struct {
	utilizationService *services.UtilizationService
}

// NewUtilizationHandler creates a new utilization handler
func NewUtilizationHandler(utilizationService *services.UtilizationService) *UtilizationHandler {
	return &UtilizationHandler{utilizationService: utilizationService}
}

type utilizationResponse struct {
	Studies     []models.UtilizationSummary `json:"studies"`
	TotalCount  int64                       `json:"totalCount"`
	CurrentPage int                         `json:"currentPage"`
	TotalPages  int                         `json:"totalPages"`
}

// List returns the filtered, paginated utilization summary. limit=all
// returns every matching row on a single page.
func (h *UtilizationHandler) List(w http.ResponseWriter, r *http.Request) {
	spec := query.Parse(r.URL.Query())

	rows, total, err := h.utilizationService.List(r.Context(), spec)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch utilization data")
		respondError(w, http.StatusInternalServerError, "Failed to fetch utilization data")
		return
	}

	totalPages := spec.TotalPages(total)
	setPageLinks(w, r, spec, totalPages)
	respondJSON(w, http.StatusOK, utilizationResponse{
		Studies:     rows,
		TotalCount:  total,
		CurrentPage: spec.CurrentPage(),
		TotalPages:  totalPages,
	})
}

// Modalities returns the distinct modalities in the summary table as a
// flat string list.
func (h *UtilizationHandler) Modalities(w http.ResponseWriter, r *http.Request) {
	values, err := h.utilizationService.Modalities(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch modalities")
		respondError(w, http.StatusInternalServerError, "Failed to fetch modalities")
		return
	}
	respondJSON(w, http.StatusOK, values)
}

// SourceAEs returns the distinct source AE titles as a flat string list.
func (h *UtilizationHandler) SourceAEs(w http.ResponseWriter, r *http.Request) {
	values, err := h.utilizationService.SourceAEs(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch source AEs")
		respondError(w, http.StatusInternalServerError, "Failed to fetch source AEs")
		return
	}
	respondJSON(w, http.StatusOK, values)
}
