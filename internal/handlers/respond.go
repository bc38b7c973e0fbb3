package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pacsboard/pacsboard/internal/query"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// setPageLinks adds prev/next navigation links for a paginated list. The
// links round-trip the full filter state through the query string.
func setPageLinks(w http.ResponseWriter, r *http.Request, spec query.Spec, totalPages int) {
	if spec.All {
		return
	}
	base := spec.Values()
	// prev is emitted even past the last page, so an over-paged client
	// can always navigate back.
	if spec.Page > 1 {
		qs := query.MergeQuery(base, map[string]string{"page": strconv.Itoa(spec.Page - 1)})
		w.Header().Add("Link", fmt.Sprintf("<%s?%s>; rel=\"prev\"", r.URL.Path, qs))
	}
	if spec.Page < totalPages {
		qs := query.MergeQuery(base, map[string]string{"page": strconv.Itoa(spec.Page + 1)})
		w.Header().Add("Link", fmt.Sprintf("<%s?%s>; rel=\"next\"", r.URL.Path, qs))
	}
}
