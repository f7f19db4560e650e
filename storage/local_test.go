package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalBlobStorePutOpen(t *testing.T) {
	store, err := NewLocalBlobStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewLocalBlobStore() = %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "song_1.mp3", strings.NewReader("ID3-bytes"), 9, "audio/mpeg"); err != nil {
		t.Fatalf("Put() = %v", err)
	}

	rc, info, err := store.Open(ctx, "song_1.mp3")
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	defer rc.Close()

	body, _ := io.ReadAll(rc)
	if string(body) != "ID3-bytes" {
		t.Fatalf("body = %q, want ID3-bytes", body)
	}
	if info.Size != 9 {
		t.Fatalf("Size = %d, want 9", info.Size)
	}
	if info.ContentType != "audio/mpeg" {
		t.Fatalf("ContentType = %q, want audio/mpeg", info.ContentType)
	}
	if _, ok := rc.(io.Seeker); !ok {
		t.Fatalf("Open() reader does not seek")
	}
}

func TestLocalBlobStoreOpenMissing(t *testing.T) {
	store, _ := NewLocalBlobStore(t.TempDir())

	_, _, err := store.Open(context.Background(), "panic_missing.mp3")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestLocalBlobStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocalBlobStore(filepath.Join(dir, "uploads"))
	ctx := context.Background()

	if err := store.Put(ctx, "../escape.mp3", strings.NewReader("x"), 1, "audio/mpeg"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("Put() error = %v, want ErrInvalidName", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.mp3")); !os.IsNotExist(err) {
		t.Fatalf("file written outside upload dir")
	}
	if _, _, err := store.Open(ctx, "../escape.mp3"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("Open() error = %v, want ErrInvalidName", err)
	}
}

func TestLocalBlobStoreList(t *testing.T) {
	store, _ := NewLocalBlobStore(t.TempDir())
	ctx := context.Background()
	for _, name := range []string{"song_b.mp3", "panic_a.mp3", "song_a.mp3"} {
		if err := store.Put(ctx, name, strings.NewReader("x"), 1, "audio/mpeg"); err != nil {
			t.Fatalf("Put(%q) = %v", name, err)
		}
	}

	songs, err := store.List(ctx, "song_")
	if err != nil {
		t.Fatalf("List() = %v", err)
	}
	if len(songs) != 2 || songs[0].Name != "song_a.mp3" || songs[1].Name != "song_b.mp3" {
		t.Fatalf("List(song_) = %+v, want song_a.mp3, song_b.mp3", songs)
	}
}

func TestLocalBlobStoreDelete(t *testing.T) {
	store, _ := NewLocalBlobStore(t.TempDir())
	ctx := context.Background()

	if err := store.Put(ctx, "panic_1.mp3", strings.NewReader("x"), 1, "audio/mpeg"); err != nil {
		t.Fatalf("Put() = %v", err)
	}
	if err := store.Delete(ctx, "panic_1.mp3"); err != nil {
		t.Fatalf("Delete() = %v", err)
	}
	if _, _, err := store.Open(ctx, "panic_1.mp3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Open() after Delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "panic_1.mp3"); err != nil {
		t.Fatalf("Delete(missing) = %v, want nil", err)
	}
	if err := store.Delete(ctx, "../escape.mp3"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("Delete(traversal) error = %v, want ErrInvalidName", err)
	}
}
