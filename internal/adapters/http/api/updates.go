// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"

	busadapter "github.com/ehsandc/Event-App-on-render/internal/adapters/mq/bus"
)

// UpdateDependencies defines the interface for the live updates feed.
type UpdateDependencies interface {
	Subscribe(topic busadapter.Topic, h busadapter.Handler) string
	Unsubscribe(token string)
}

// UpdatesHandler streams notification bus topics to clients over
// server-sent events. A browser client re-runs its reconciled query on
// "dataChanged" and resets its filter spec on "resetFilters".
type UpdatesHandler struct {
	deps UpdateDependencies
}

// NewUpdatesHandler creates a new updates handler.
func NewUpdatesHandler(deps UpdateDependencies) *UpdatesHandler {
	return &UpdatesHandler{deps: deps}
}

// HandleUpdates handles GET /updates requests.
func (h *UpdatesHandler) HandleUpdates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind("api.updates", ErrBadRequest))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Bus delivery is synchronous; hand off through a channel so the
	// publisher never blocks on a slow client.
	notifications := make(chan busadapter.Topic, 16)
	forward := func(_ context.Context, topic busadapter.Topic) {
		select {
		case notifications <- topic:
		default: // client too slow, drop the signal
		}
	}

	dataToken := h.deps.Subscribe(busadapter.TopicDataChanged, forward)
	resetToken := h.deps.Subscribe(busadapter.TopicResetFilters, forward)
	defer h.deps.Unsubscribe(dataToken)
	defer h.deps.Unsubscribe(resetToken)

	for {
		select {
		case <-r.Context().Done():
			return
		case topic := <-notifications:
			fmt.Fprintf(w, "event: %s\ndata: {}\n\n", topic)
			flusher.Flush()
		}
	}
}
