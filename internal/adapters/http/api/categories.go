// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

// CategoryDependencies defines the interface for category operations.
type CategoryDependencies interface {
	Categories(ctx context.Context) ([]model.Category, error)
	AddCategory(ctx context.Context, name string) (model.Category, error)
	RenameCategory(ctx context.Context, id int64, newName string) error
	DeleteCategory(ctx context.Context, id int64) error
}

// CategoriesHandler handles category requests.
type CategoriesHandler struct {
	deps CategoryDependencies
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(deps CategoryDependencies) *CategoriesHandler {
	return &CategoriesHandler{deps: deps}
}

type categoryRequest struct {
	Name string `json:"name"`
}

// HandleCategories handles GET /categories and POST /categories.
func (h *CategoriesHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	const op = "api.categories"

	switch r.Method {
	case http.MethodGet:
		categories, err := h.deps.Categories(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		created, err := h.deps.AddCategory(r.Context(), req.Name)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	default:
		http.NotFound(w, r)
	}
}

// HandleCategoryByID handles PUT and DELETE for /categories/{id}.
func (h *CategoriesHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.category_by_id"

	id, ok := idFromPath(r.URL.Path, "/categories/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.RenameCategory(r.Context(), id, req.Name); err != nil {
			writeDomainError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		if err := h.deps.DeleteCategory(r.Context(), id); err != nil {
			writeDomainError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.NotFound(w, r)
	}
}
