package repository

import (
	"context"
	"errors"
	"fmt"

	"bellsync/model"
)

// ErrDocumentNotFound is returned by Load when nothing has been persisted yet.
var ErrDocumentNotFound = errors.New("document not found")

// DecodeError reports persisted state that exists but cannot be decoded.
type DecodeError struct {
	Location string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode document at %s: %v", e.Location, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DocumentRepository persists the whole document at once.
type DocumentRepository interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
	Location() string
}

func normalize(doc *model.Document) *model.Document {
	if doc.Songs == nil {
		doc.Songs = []model.Song{}
	}
	if doc.Events == nil {
		doc.Events = []model.Event{}
	}
	return doc
}
