package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elaa0505/AzuraCast/internal/service"
)

type SSEHandler struct {
	handlers  *Handlers
	eventBus  *service.EventBus
	keepAlive time.Duration
}

func NewSSEHandler(handlers *Handlers, eventBus *service.EventBus) *SSEHandler {
	return &SSEHandler{
		handlers:  handlers,
		eventBus:  eventBus,
		keepAlive: 15 * time.Second,
	}
}

// sseWrite writes an SSE event, handling multi-line data correctly.
func sseWrite(w http.ResponseWriter, eventName string, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", eventName)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// sendKeepAlive writes an SSE comment to keep the connection active.
func sendKeepAlive(w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, ": keep-alive\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func sendEvent(w http.ResponseWriter, event service.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	sseWrite(w, event.Type, string(data))
	return nil
}

// Events streams batch and regeneration events of one station until the
// client goes away.
func (h *SSEHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := h.handlers.station(w, r)
		if tenant == nil {
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ch := h.eventBus.Subscribe(tenant.ID)
		defer h.eventBus.Unsubscribe(tenant.ID, ch)

		sendKeepAlive(w)

		ctx := r.Context()
		keepAlive := time.NewTicker(h.keepAlive)
		defer keepAlive.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-keepAlive.C:
				sendKeepAlive(w)
			case event, ok := <-ch:
				if !ok {
					return
				}
				if err := sendEvent(w, event); err != nil {
					return
				}
			}
		}
	}
}
