package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Open for names that were never stored.
	ErrNotFound = errors.New("blob not found")
	// ErrInvalidName rejects names that could escape the flat namespace.
	ErrInvalidName = errors.New("invalid blob name")
)

// Kind prefixes generated blob names.
type Kind string

const (
	KindSong  Kind = "song"
	KindPanic Kind = "panic"
)

// ObjectInfo describes a stored blob.
type ObjectInfo struct {
	Name         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// BlobStore is a flat namespace of uploaded audio clips.
type BlobStore interface {
	// Put stores r under name. size may be -1 when unknown.
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	// Open returns the blob's content. The reader is also an io.ReadSeeker
	// for both implementations, which lets handlers serve byte ranges.
	Open(ctx context.Context, name string) (io.ReadCloser, *ObjectInfo, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Delete removes name; a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}

// NewBlobName returns "<kind>_<uuid>.mp3".
func NewBlobName(kind Kind) string {
	return string(kind) + "_" + uuid.New().String() + ".mp3"
}

// ValidateName accepts a single path element only.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || path.Base(name) != name {
		return ErrInvalidName
	}
	return nil
}
