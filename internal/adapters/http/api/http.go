// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	busadapter "github.com/ehsandc/Event-App-on-render/internal/adapters/mq/bus"
	service "github.com/ehsandc/Event-App-on-render/internal/app"
	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Reconciled reads.
	FilterEvents(ctx context.Context, spec model.FilterSpec) ([]model.Event, error)
	GetEvent(ctx context.Context, id int64) (model.Event, error)
	Categories(ctx context.Context) ([]model.Category, error)
	Users(ctx context.Context) ([]model.User, error)

	// Local mutations.
	AddEvent(ctx context.Context, e model.Event) (model.Event, error)
	EditEvent(ctx context.Context, id int64, replacement model.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	AddCategory(ctx context.Context, name string) (model.Category, error)
	RenameCategory(ctx context.Context, id int64, newName string) error
	DeleteCategory(ctx context.Context, id int64) error

	// Seed maintenance.
	Refresh(ctx context.Context) error

	// Notification bus access for the updates feed.
	ResetFilters(ctx context.Context)
	Subscribe(topic busadapter.Topic, h busadapter.Handler) string
	Unsubscribe(token string)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	eventsHandler     *EventsHandler
	categoriesHandler *CategoriesHandler
	usersHandler      *UsersHandler
	exportHandler     *ExportHandler
	updatesHandler    *UpdatesHandler
	filtersHandler    *FiltersHandler
	refreshHandler    *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		eventsHandler:     NewEventsHandler(deps),
		categoriesHandler: NewCategoriesHandler(deps),
		usersHandler:      NewUsersHandler(deps),
		exportHandler:     NewExportHandler(deps),
		updatesHandler:    NewUpdatesHandler(deps),
		filtersHandler:    NewFiltersHandler(deps),
		refreshHandler:    NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleEventByID, "event"))
	mux.HandleFunc("/categories", MetricsMiddleware(s.categoriesHandler.HandleCategories, "categories"))
	mux.HandleFunc("/categories/", MetricsMiddleware(s.categoriesHandler.HandleCategoryByID, "category"))
	mux.HandleFunc("/users", MetricsMiddleware(s.usersHandler.HandleGetUsers, "users"))
	mux.HandleFunc("/export/events.ics", MetricsMiddleware(s.exportHandler.HandleExportICS, "export"))
	mux.HandleFunc("/filters/reset", MetricsMiddleware(s.filtersHandler.HandleResetFilters, "filters_reset"))
	mux.HandleFunc("/seed/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "seed_refresh"))
	// SSE endpoint stays unwrapped: the connection is long-lived and
	// duration metrics would only measure client patience.
	mux.HandleFunc("/updates", s.updatesHandler.HandleUpdates)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates rejected operations from the service into
// HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, service.ErrDuplicateName):
		writeError(w, http.StatusConflict, "duplicate_name", Wrap(op, err))
	case errors.Is(err, service.ErrCategoryInUse):
		writeError(w, http.StatusConflict, "category_in_use", Wrap(op, err))
	case errors.Is(err, service.ErrCategoryReadOnly):
		writeError(w, http.StatusForbidden, "read_only", Wrap(op, err))
	case errors.Is(err, service.ErrInvalidEvent), errors.Is(err, service.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// eventRequest mirrors the JSON body for POST /events and PUT /events/{id}.
type eventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Image       string  `json:"image"`
	CategoryIDs []int64 `json:"categoryIds"`
	CreatedBy   int64   `json:"createdBy"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(e.StartTime) == "":
		return errors.New("missing startTime")
	case strings.TrimSpace(e.EndTime) == "":
		return errors.New("missing endTime")
	}
	if _, err := time.Parse(time.RFC3339, e.StartTime); err != nil {
		return errors.New("invalid startTime; must be RFC3339")
	}
	if _, err := time.Parse(time.RFC3339, e.EndTime); err != nil {
		return errors.New("invalid endTime; must be RFC3339")
	}
	return nil
}

// toModel converts the request to a domain event. validate must have
// passed already.
func (e eventRequest) toModel() model.Event {
	start, _ := time.Parse(time.RFC3339, e.StartTime)
	end, _ := time.Parse(time.RFC3339, e.EndTime)
	return model.Event{
		Title:       strings.TrimSpace(e.Title),
		Description: e.Description,
		StartTime:   start,
		EndTime:     end,
		Image:       e.Image,
		CategoryIDs: e.CategoryIDs,
		CreatedBy:   e.CreatedBy,
	}
}
