// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

// UserDependencies defines the interface for user reads. Users are
// read-only reference data; no mutation path exists.
type UserDependencies interface {
	Users(ctx context.Context) ([]model.User, error)
}

// UsersHandler handles user requests.
type UsersHandler struct {
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleGetUsers handles GET /users requests.
func (h *UsersHandler) HandleGetUsers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_users"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	users, err := h.deps.Users(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, users)
}
