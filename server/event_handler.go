package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"bellsync/core/schedule"
	"bellsync/logger"
	"bellsync/model"
)

// EventHandler creates an event on POST and upserts one by id on PUT.
func (h *APIHandler) EventHandler(w http.ResponseWriter, r *http.Request) {
	var ev model.Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, jsonBodyLimit)).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	var (
		id      string
		created = true
		err     error
	)
	if r.Method == http.MethodPut {
		id, created, err = h.store.UpsertEvent(r.Context(), ev)
	} else {
		id, err = h.store.AddEvent(r.Context(), ev)
	}

	if errors.Is(err, schedule.ErrMissingID) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Error("failed to save event", logger.String("method", r.Method), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to save event")
		return
	}

	logger.Info("event saved", logger.String("id", id), logger.Bool("created", created))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Event handled", ID: id})
}
