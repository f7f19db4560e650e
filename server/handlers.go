package server

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"bellsync/core/alert"
	"bellsync/core/notify"
	"bellsync/core/schedule"
	"bellsync/logger"
	"bellsync/storage"
)

// jsonBodyLimit caps non-multipart request bodies.
const jsonBodyLimit = 1 << 20

// APIHandler serves every HTTP endpoint. It owns no state of its own; the
// schedule store, panic service and status hub are shared with the rest of
// the process.
type APIHandler struct {
	store     *schedule.Store
	alerts    *alert.Service
	blobs     storage.BlobStore
	hub       *notify.Hub
	staticDir string
	maxUpload int64
}

func NewAPIHandler(
	store *schedule.Store,
	alerts *alert.Service,
	blobs storage.BlobStore,
	hub *notify.Hub,
	staticDir string,
	maxUpload int64,
) *APIHandler {
	return &APIHandler{
		store:     store,
		alerts:    alerts,
		blobs:     blobs,
		hub:       hub,
		staticDir: staticDir,
		maxUpload: maxUpload,
	}
}

type messageResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Warn("failed to write response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// parseUpload parses a size-capped multipart form. A non-multipart body is
// not an error; it simply carries no files.
func (h *APIHandler) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	err := r.ParseMultipartForm(32 << 20)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
		return false
	}
	logger.Warn("invalid multipart form", logger.String("path", r.URL.Path), logger.ErrorField(err))
	writeError(w, http.StatusBadRequest, "invalid multipart form")
	return false
}

// formFile returns the "file" part, or nil when the request has none. A part
// with an empty filename counts as absent.
func formFile(r *http.Request) (multipart.File, *multipart.FileHeader) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil
	}
	if header.Filename == "" {
		file.Close()
		return nil, nil
	}
	return file, header
}
