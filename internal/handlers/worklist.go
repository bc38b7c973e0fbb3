package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/query"
	"github.com/pacsboard/pacsboard/internal/services"
)

// WorklistHandler serves the scheduled-procedure list.
type WorklistHandler struct {
	worklistService *services.WorklistService
}

// NewWorklistHandler creates a new worklist handler
func NewWorklistHandler(worklistService *services.WorklistService) *WorklistHandler {
	return &WorklistHandler{worklistService: worklistService}
}

type worklistResponse struct {
	Worklist    []models.WorklistEntry `json:"worklist"`
	TotalCount  int64                  `json:"totalCount"`
	CurrentPage int                    `json:"currentPage"`
	TotalPages  int                    `json:"totalPages"`
}

// List returns the filtered, paginated worklist.
func (h *WorklistHandler) List(w http.ResponseWriter, r *http.Request) {
	spec := query.Parse(r.URL.Query())

	entries, total, err := h.worklistService.List(r.Context(), spec)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch worklist")
		respondError(w, http.StatusInternalServerError, "Failed to fetch worklist data")
		return
	}

	totalPages := spec.TotalPages(total)
	setPageLinks(w, r, spec, totalPages)
	respondJSON(w, http.StatusOK, worklistResponse{
		Worklist:    entries,
		TotalCount:  total,
		CurrentPage: spec.CurrentPage(),
		TotalPages:  totalPages,
	})
}

// Statuses returns the distinct performed statuses for the filter
// dropdown.
func (h *WorklistHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.worklistService.Statuses(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch worklist statuses")
		respondError(w, http.StatusInternalServerError, "Failed to fetch statuses")
		return
	}
	respondJSON(w, http.StatusOK, statuses)
}
