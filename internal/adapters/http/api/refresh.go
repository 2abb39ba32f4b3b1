// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/ehsandc/Event-App-on-render/internal/adapters/seed"
)

// RefreshDependencies defines the interface for seed refresh.
type RefreshDependencies interface {
	Refresh(ctx context.Context) error
}

// RefreshHandler triggers an on-demand refetch of the seed document.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandleRefresh handles POST /seed/refresh requests. A failed fetch
// leaves the previous snapshot in place and maps to 502.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.seed_refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.Refresh(r.Context()); err != nil {
		if errors.Is(err, seed.ErrFetchFailure) {
			writeError(w, http.StatusBadGateway, "seed_unavailable", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
