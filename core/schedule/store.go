// Package schedule owns the in-memory song and event document and keeps it in
// step with its repository.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"bellsync/logger"
	"bellsync/model"
	"bellsync/repository"

	"github.com/google/uuid"
)

// ErrMissingID is returned when an update names no event.
var ErrMissingID = errors.New("event id is required")

// Store is the single owner of the document. Every mutation runs against a
// copy, is saved, and only then becomes visible.
type Store struct {
	repo repository.DocumentRepository

	mu        sync.RWMutex
	doc       model.Document
	listeners []func()

	newID func() string
}

// Open loads the persisted document, falling back to the seed document when
// nothing was saved yet or the saved state is malformed.
func Open(ctx context.Context, repo repository.DocumentRepository) (*Store, error) {
	doc, err := loadOrSeed(ctx, repo)
	if err != nil {
		return nil, err
	}
	return &Store{
		repo:  repo,
		doc:   *doc,
		newID: func() string { return uuid.New().String() },
	}, nil
}

func loadOrSeed(ctx context.Context, repo repository.DocumentRepository) (*model.Document, error) {
	doc, err := repo.Load(ctx)
	if err == nil {
		return doc, nil
	}

	var decodeErr *repository.DecodeError
	switch {
	case errors.Is(err, repository.ErrDocumentNotFound):
		logger.Info("no saved document, using seed data", logger.String("location", repo.Location()))
		return model.SeedDocument(), nil
	case errors.As(err, &decodeErr):
		logger.Warn("saved document is malformed, using seed data",
			logger.String("location", repo.Location()),
			logger.ErrorField(err))
		return model.SeedDocument(), nil
	default:
		return nil, fmt.Errorf("load document: %w", err)
	}
}

// OnChange registers fn to run after every successful save or reload.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Snapshot returns a copy of the in-memory document.
func (s *Store) Snapshot() model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Fresh re-reads the repository instead of the in-memory copy.
func (s *Store) Fresh(ctx context.Context) (model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := loadOrSeed(ctx, s.repo)
	if err != nil {
		return model.Document{}, err
	}
	return doc.Clone(), nil
}

// UpsertSong adds a song, or replaces the one with the same id. A non-empty
// blobName becomes the song's filename; with no new blob an existing song
// keeps the file it already had.
func (s *Store) UpsertSong(ctx context.Context, song model.Song, blobName string) (string, error) {
	err := s.mutate(ctx, func(doc *model.Document) error {
		if blobName != "" {
			song.Filename = blobName
		}
		if song.ID == "" {
			song.ID = s.newID()
			doc.Songs = append(doc.Songs, song)
			return nil
		}
		if i := doc.FindSong(song.ID); i >= 0 {
			if blobName == "" {
				song.Filename = doc.Songs[i].Filename
			}
			doc.Songs[i] = song
			return nil
		}
		doc.Songs = append(doc.Songs, song)
		return nil
	})
	if err != nil {
		return "", err
	}
	return song.ID, nil
}

// AddEvent appends ev under a new id; any id it carries is replaced.
func (s *Store) AddEvent(ctx context.Context, ev model.Event) (string, error) {
	err := s.mutate(ctx, func(doc *model.Document) error {
		ev.ID = s.newID()
		doc.Events = append(doc.Events, ev)
		return nil
	})
	if err != nil {
		return "", err
	}
	return ev.ID, nil
}

// UpsertEvent replaces the event with ev.ID, appending it when unknown.
// created reports which of the two happened.
func (s *Store) UpsertEvent(ctx context.Context, ev model.Event) (id string, created bool, err error) {
	if ev.ID == "" {
		return "", false, ErrMissingID
	}
	err = s.mutate(ctx, func(doc *model.Document) error {
		if i := doc.FindEvent(ev.ID); i >= 0 {
			doc.Events[i] = ev
			return nil
		}
		created = true
		doc.Events = append(doc.Events, ev)
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return ev.ID, created, nil
}

// Reload replaces the in-memory document with the repository's. Missing or
// malformed state leaves the current document in place.
func (s *Store) Reload(ctx context.Context) error {
	// Held across Load so a save cannot land between the read and the swap.
	s.mu.Lock()
	doc, err := s.repo.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		var decodeErr *repository.DecodeError
		if errors.Is(err, repository.ErrDocumentNotFound) || errors.As(err, &decodeErr) {
			logger.Warn("ignoring reload of unusable document",
				logger.String("location", s.repo.Location()),
				logger.ErrorField(err))
			return nil
		}
		return fmt.Errorf("reload document: %w", err)
	}

	if slices.Equal(doc.Songs, s.doc.Songs) && slices.Equal(doc.Events, s.doc.Events) {
		s.mu.Unlock()
		return nil
	}
	s.doc = *doc
	listeners := s.listeners
	s.mu.Unlock()

	logger.Info("document reloaded",
		logger.String("location", s.repo.Location()),
		logger.Int("songs", len(doc.Songs)),
		logger.Int("events", len(doc.Events)))
	notify(listeners)
	return nil
}

func (s *Store) mutate(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	next := s.doc.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.repo.Save(ctx, &next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save document: %w", err)
	}
	s.doc = next
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners)
	return nil
}

func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
