package server

import (
	"net/http"

	"bellsync/logger"
	"bellsync/model"
)

// StatusFeedHandler upgrades to the status feed websocket. The hello frame
// carries the stored panic record without consuming it.
func (h *APIHandler) StatusFeedHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := h.alerts.Peek(r.Context())
	if err != nil {
		logger.Warn("failed to peek panic signal", logger.ErrorField(err))
		rec = model.NoPanic()
	}
	if err := h.hub.Serve(w, r, rec); err != nil {
		logger.Warn("status feed upgrade failed", logger.ErrorField(err))
	}
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
