package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"bellsync/logger"

	"github.com/fsnotify/fsnotify"
)

// WatchFile calls onChange after path is created, written or renamed over.
// The parent directory is watched because Save replaces the file by rename.
// Bursts of events within debounce collapse into one call. The watcher stops
// when ctx is done.
func WatchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer watcher.Close()

		timer := time.NewTimer(debounce)
		timer.Stop()

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				timer.Reset(debounce)
			case <-timer.C:
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("data file watcher error", logger.String("path", target), logger.ErrorField(err))
			}
		}
	}()

	logger.Info("watching data file", logger.String("path", target))
	return nil
}
