// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"

	ics "github.com/arran4/golang-ical"

	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

// ExportDependencies defines the interface for calendar export.
type ExportDependencies interface {
	FilterEvents(ctx context.Context, spec model.FilterSpec) ([]model.Event, error)
}

// ExportHandler serves the reconciled event list as an iCalendar feed.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExportICS handles GET /export/events.ics. It honors the same
// filter query parameters as GET /events, so a filtered view can be
// subscribed to directly.
func (h *ExportHandler) HandleExportICS(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_ics"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

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

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//event-app//events//EN")

	for _, e := range events {
		ve := cal.AddEvent(fmt.Sprintf("%d@event-app", e.ID))
		ve.SetDtStampTime(e.StartTime)
		ve.SetStartAt(e.StartTime)
		ve.SetEndAt(e.EndTime)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Image != "" {
			ve.SetURL(e.Image)
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(cal.Serialize()))
}
