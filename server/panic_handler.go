package server

import (
	"net/http"

	"bellsync/logger"
)

// PanicUploadHandler stores an emergency clip and raises the panic signal.
func (h *APIHandler) PanicUploadHandler(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}

	file, header := formFile(r)
	if file == nil {
		writeError(w, http.StatusBadRequest, "No file part in the request")
		return
	}
	defer file.Close()

	rec, err := h.alerts.Submit(r.Context(), file, header.Size)
	if err != nil {
		logger.Error("failed to submit panic", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to store panic audio")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message:  "Panic file saved. RPi clients should be notified.",
		Filename: rec.Filename,
	})
}

// PanicCheckHandler hands a NEW panic to the first device that asks.
func (h *APIHandler) PanicCheckHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := h.alerts.Check(r.Context())
	if err != nil {
		logger.Error("failed to check panic signal", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to check panic signal")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
