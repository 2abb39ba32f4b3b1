// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

// EventDependencies defines the interface for event operations.
type EventDependencies interface {
	FilterEvents(ctx context.Context, spec model.FilterSpec) ([]model.Event, error)
	GetEvent(ctx context.Context, id int64) (model.Event, error)
	AddEvent(ctx context.Context, e model.Event) (model.Event, error)
	EditEvent(ctx context.Context, id int64, replacement model.Event) error
	DeleteEvent(ctx context.Context, id int64) error
}

// EventsHandler handles event requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleEvents handles GET /events?q=&category=&creator=&period= and
// POST /events.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"

	spec, err := filterSpecFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	events, err := h.deps.FilterEvents(r.Context(), spec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_event"

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	created, err := h.deps.AddEvent(r.Context(), req.toModel())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleEventByID handles GET, PUT and DELETE for /events/{id}.
func (h *EventsHandler) HandleEventByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.event_by_id"

	id, ok := idFromPath(r.URL.Path, "/events/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodGet:
		event, err := h.deps.GetEvent(r.Context(), id)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, event)

	case http.MethodPut:
		var req eventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.EditEvent(r.Context(), id, req.toModel()); err != nil {
			writeDomainError(w, op, err)
			return
		}
		event, err := h.deps.GetEvent(r.Context(), id)
		if err != nil {
			writeDomainError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, event)

	case http.MethodDelete:
		if err := h.deps.DeleteEvent(r.Context(), id); err != nil {
			writeDomainError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.NotFound(w, r)
	}
}

// filterSpecFromQuery parses the filter parameters. Absent category and
// creator parameters (or the literal "all") mean no restriction.
func filterSpecFromQuery(r *http.Request) (model.FilterSpec, error) {
	spec := model.DefaultFilterSpec()
	q := r.URL.Query()

	spec.SearchText = q.Get("q")

	var err error
	if spec.CategoryID, err = parseIDOrAll(q.Get("category")); err != nil {
		return model.FilterSpec{}, err
	}
	if spec.CreatorID, err = parseIDOrAll(q.Get("creator")); err != nil {
		return model.FilterSpec{}, err
	}

	if period := q.Get("period"); period != "" {
		spec.DatePeriod = model.DatePeriod(period)
		if !spec.DatePeriod.Valid() {
			return model.FilterSpec{}, ErrBadRequest
		}
	}
	return spec, nil
}

func parseIDOrAll(raw string) (int64, error) {
	if raw == "" || raw == "all" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// idFromPath extracts the numeric id after prefix, rejecting nested paths.
func idFromPath(path, prefix string) (int64, bool) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
