package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"bellsync/logger"
	"bellsync/storage"

	"github.com/gorilla/mux"
)

// IndexHandler serves the UI shell.
func (h *APIHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, "index.html")
}

// StaticFileHandler serves a UI asset by bare name.
func (h *APIHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	h.serveStatic(w, r, mux.Vars(r)["filename"])
}

func (h *APIHandler) serveStatic(w http.ResponseWriter, r *http.Request, name string) {
	if storage.ValidateName(name) != nil {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(filepath.Join(h.staticDir, name))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, name, st.ModTime(), f)
}

// UploadFileHandler streams a stored song or panic clip to a device.
func (h *APIHandler) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	rc, info, err := h.blobs.Open(r.Context(), name)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	if err != nil {
		logger.Error("failed to open upload", logger.String("filename", name), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", info.ContentType)
	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, info.LastModified, rs)
		return
	}

	if _, err := io.Copy(w, rc); err != nil {
		logger.Warn("error streaming upload", logger.String("filename", name), logger.ErrorField(err))
	}
}
