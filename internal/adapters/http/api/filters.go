// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// FilterDependencies defines the interface for filter signals.
type FilterDependencies interface {
	ResetFilters(ctx context.Context)
}

// FiltersHandler handles filter signal requests.
type FiltersHandler struct {
	deps FilterDependencies
}

// NewFiltersHandler creates a new filters handler.
func NewFiltersHandler(deps FilterDependencies) *FiltersHandler {
	return &FiltersHandler{deps: deps}
}

// HandleResetFilters handles POST /filters/reset requests. It only
// broadcasts the reset signal; each consumer owns its own filter spec.
func (h *FiltersHandler) HandleResetFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.ResetFilters(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
