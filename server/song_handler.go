package server

import (
	"context"
	"encoding/json"
	"net/http"

	"bellsync/logger"
	"bellsync/model"
	"bellsync/storage"
)

// keepAudioFilename is what the web UI uploads when only metadata changed.
const keepAudioFilename = "no_change.txt"

// SongUploadHandler saves song metadata and, when present, its audio clip.
func (h *APIHandler) SongUploadHandler(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}

	metadata := r.FormValue("metadata")
	if metadata == "" {
		metadata = "{}"
	}
	var song model.Song
	if err := json.Unmarshal([]byte(metadata), &song); err != nil {
		writeError(w, http.StatusBadRequest, "invalid song metadata")
		return
	}

	var blobName string
	if file, header := formFile(r); file != nil {
		defer file.Close()
		if header.Filename != keepAudioFilename {
			blobName = storage.NewBlobName(storage.KindSong)
			if err := h.blobs.Put(r.Context(), blobName, file, header.Size, "audio/mpeg"); err != nil {
				logger.Error("failed to store song audio", logger.String("filename", blobName), logger.ErrorField(err))
				writeError(w, http.StatusInternalServerError, "failed to store audio")
				return
			}
		}
	}

	id, err := h.store.UpsertSong(r.Context(), song, blobName)
	if err != nil {
		logger.Error("failed to save song", logger.ErrorField(err))
		if blobName != "" {
			if err := h.blobs.Delete(context.WithoutCancel(r.Context()), blobName); err != nil {
				logger.Warn("failed to remove orphaned song audio", logger.String("filename", blobName), logger.ErrorField(err))
			}
		}
		writeError(w, http.StatusInternalServerError, "failed to save song")
		return
	}

	logger.Info("song saved", logger.String("id", id), logger.String("filename", blobName))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Song metadata saved", ID: id})
}
