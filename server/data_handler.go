package server

import (
	"net/http"

	"bellsync/logger"
	"bellsync/model"
)

// syncResponse keeps the field order devices have always received.
type syncResponse struct {
	Events []model.Event `json:"events"`
	Songs  []model.Song  `json:"songs"`
}

// GetDataHandler returns the in-memory document for the web UI.
func (h *APIHandler) GetDataHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// SyncHandler returns the persisted document, re-read on every call, for
// polling devices.
func (h *APIHandler) SyncHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Fresh(r.Context())
	if err != nil {
		logger.Error("failed to read document for sync", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to read schedule")
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{Events: doc.Events, Songs: doc.Songs})
}
