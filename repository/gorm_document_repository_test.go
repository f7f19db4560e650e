package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"bellsync/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestGormRepository(t *testing.T) *GormDocumentRepository {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// Every pooled connection would get its own in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo, err := NewGormDocumentRepository(gdb)
	if err != nil {
		t.Fatalf("NewGormDocumentRepository() = %v", err)
	}
	return repo
}

func TestGormDocumentRepositoryNotFoundBeforeFirstSave(t *testing.T) {
	repo := newTestGormRepository(t)

	_, err := repo.Load(context.Background())
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("Load() error = %v, want ErrDocumentNotFound", err)
	}
}

func TestGormDocumentRepositoryRoundTrip(t *testing.T) {
	repo := newTestGormRepository(t)
	ctx := context.Background()

	want := sampleDocument()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestGormDocumentRepositorySaveReplacesRows(t *testing.T) {
	repo := newTestGormRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, sampleDocument()); err != nil {
		t.Fatalf("first Save() = %v", err)
	}
	smaller := &model.Document{
		Songs:  []model.Song{{ID: "s9", Name: "Only", Filename: "song_z.mp3", ClipEnd: 5}},
		Events: []model.Event{},
	}
	if err := repo.Save(ctx, smaller); err != nil {
		t.Fatalf("second Save() = %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if !reflect.DeepEqual(got, smaller) {
		t.Fatalf("Load() = %+v, want %+v", got, smaller)
	}
}

func TestGormDocumentRepositoryEmptyDocumentStaysEmpty(t *testing.T) {
	repo := newTestGormRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, &model.Document{}); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() = %v, want empty document", err)
	}
	if len(got.Songs) != 0 || len(got.Events) != 0 {
		t.Fatalf("Load() = %+v, want empty document", got)
	}
}
