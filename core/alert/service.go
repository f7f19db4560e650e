package alert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bellsync/logger"
	"bellsync/model"
	"bellsync/storage"
)

// ErrNoPayload is returned when a panic is submitted without audio.
var ErrNoPayload = errors.New("no panic audio provided")

// Notifier hears about panic state changes. It must not block.
type Notifier interface {
	PanicSubmitted(rec model.PanicRecord)
	PanicDelivered(rec model.PanicRecord)
}

// Service stores panic audio and raises the signal.
type Service struct {
	blobs    storage.BlobStore
	signal   Signal
	notifier Notifier
}

// NewService wires the blob store and signal. notifier may be nil.
func NewService(blobs storage.BlobStore, signal Signal, notifier Notifier) *Service {
	return &Service{blobs: blobs, signal: signal, notifier: notifier}
}

// Submit stores r as panic_<uuid>.mp3 and marks it NEW. size may be -1.
func (s *Service) Submit(ctx context.Context, r io.Reader, size int64) (model.PanicRecord, error) {
	if r == nil {
		return model.PanicRecord{}, ErrNoPayload
	}

	name := storage.NewBlobName(storage.KindPanic)
	if err := s.blobs.Put(ctx, name, r, size, "audio/mpeg"); err != nil {
		return model.PanicRecord{}, fmt.Errorf("store panic audio: %w", err)
	}

	rec, err := s.signal.Submit(ctx, name)
	if err != nil {
		s.discard(ctx, name)
		return model.PanicRecord{}, err
	}

	logger.Info("panic submitted",
		logger.String("filename", rec.Filename),
		logger.String("timestamp", rec.Timestamp))
	if s.notifier != nil {
		s.notifier.PanicSubmitted(rec)
	}
	return rec, nil
}

// discard removes audio that never became part of a panic record.
func (s *Service) discard(ctx context.Context, name string) {
	if err := s.blobs.Delete(context.WithoutCancel(ctx), name); err != nil {
		logger.Warn("failed to remove orphaned panic audio", logger.String("filename", name), logger.ErrorField(err))
	}
}

// Check consumes a NEW record, returning NONE for everyone after the first.
func (s *Service) Check(ctx context.Context) (model.PanicRecord, error) {
	rec, err := s.signal.CheckAndConsume(ctx)
	if err != nil {
		return model.PanicRecord{}, err
	}
	if rec.Status == model.PanicNew {
		logger.Info("panic delivered", logger.String("filename", rec.Filename))
		if s.notifier != nil {
			s.notifier.PanicDelivered(rec)
		}
	}
	return rec, nil
}

// Peek reports the stored record without consuming it.
func (s *Service) Peek(ctx context.Context) (model.PanicRecord, error) {
	return s.signal.Peek(ctx)
}
