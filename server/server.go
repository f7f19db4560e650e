package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bellsync/config"
	"bellsync/core/alert"
	"bellsync/core/notify"
	"bellsync/core/schedule"
	"bellsync/logger"
	"bellsync/repository"
	"bellsync/storage"

	"github.com/gorilla/mux"
)

const (
	watchDebounce   = 200 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// NewRouter registers every route on a gorilla/mux router and wraps it in
// the CORS and access log middleware.
func NewRouter(h *APIHandler) http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/data", h.GetDataHandler).Methods(http.MethodGet)
	api.HandleFunc("/event", h.EventHandler).Methods(http.MethodPost, http.MethodPut)
	api.HandleFunc("/songs", h.SongUploadHandler).Methods(http.MethodPost)
	api.HandleFunc("/panic", h.PanicUploadHandler).Methods(http.MethodPost)
	api.HandleFunc("/rpi_panic_check", h.PanicCheckHandler).Methods(http.MethodGet)
	api.HandleFunc("/rpi_sync", h.SyncHandler).Methods(http.MethodGet)
	api.HandleFunc("/ws", h.StatusFeedHandler).Methods(http.MethodGet)

	router.HandleFunc("/healthz", h.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/uploads/{filename}", h.UploadFileHandler).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/", h.IndexHandler).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/{filename}", h.StaticFileHandler).Methods(http.MethodGet, http.MethodHead)

	return accessLogMiddleware(corsMiddleware(router))
}

// Start builds the configured backends, serves HTTP until SIGINT or SIGTERM
// (or ctx is done), and then drains in-flight requests.
func Start(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := repository.Open(cfg)
	if err != nil {
		return fmt.Errorf("open document repository: %w", err)
	}
	defer closeRepo()

	store, err := schedule.Open(ctx, repo)
	if err != nil {
		return err
	}

	blobs, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}

	sig, closeSignal, err := alert.OpenSignal(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open panic signal: %w", err)
	}
	defer closeSignal()

	hub := notify.NewHub()
	go hub.Run()
	defer hub.Stop()

	store.OnChange(hub.DataChanged)
	alerts := alert.NewService(blobs, sig, hub)

	if cfg.StoreBackend == config.StoreBackendFile && cfg.DataWatch {
		err := repository.WatchFile(ctx, cfg.DataFile, watchDebounce, func() {
			if err := store.Reload(ctx); err != nil {
				logger.Error("failed to reload document", logger.ErrorField(err))
			}
		})
		if err != nil {
			logger.Warn("data file watch disabled", logger.String("path", cfg.DataFile), logger.ErrorField(err))
		}
	}

	handler := NewAPIHandler(store, alerts, blobs, hub, cfg.StaticDir, cfg.MaxUploadBytes())
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      NewRouter(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			logger.String("addr", srv.Addr),
			logger.String("store", cfg.StoreBackend),
			logger.String("blobs", cfg.BlobBackend),
			logger.String("panic", cfg.PanicBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	hub.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
