package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bellsync/model"

	"gorm.io/gorm"
)

// SongRecord is the songs table row. Position keeps document order.
type SongRecord struct {
	ID        string `gorm:"primaryKey;size:64"`
	Position  int    `gorm:"index"`
	Name      string
	Filename  string `gorm:"size:255"`
	ClipStart float64
	ClipEnd   float64
}

func (SongRecord) TableName() string { return "songs" }

// EventRecord is the events table row.
type EventRecord struct {
	ID       string `gorm:"primaryKey;size:64"`
	Position int    `gorm:"index"`
	Name     string
	Time     string `gorm:"size:16"`
	Day      string `gorm:"size:64"`
	SongID   string `gorm:"size:64;index"`
}

func (EventRecord) TableName() string { return "events" }

// DocumentMeta has a single row once the document has been saved; without it
// Load reports ErrDocumentNotFound, so an empty saved document stays empty.
type DocumentMeta struct {
	ID      uint `gorm:"primaryKey"`
	SavedAt time.Time
}

func (DocumentMeta) TableName() string { return "document_meta" }

// GormDocumentRepository stores the document in SQL tables.
type GormDocumentRepository struct {
	db *gorm.DB
}

func NewGormDocumentRepository(db *gorm.DB) (*GormDocumentRepository, error) {
	if err := db.AutoMigrate(&SongRecord{}, &EventRecord{}, &DocumentMeta{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate document tables: %w", err)
	}
	return &GormDocumentRepository{db: db}, nil
}

func (r *GormDocumentRepository) Location() string {
	return "gorm:" + r.db.Dialector.Name()
}

func (r *GormDocumentRepository) Load(ctx context.Context) (*model.Document, error) {
	db := r.db.WithContext(ctx)

	var meta DocumentMeta
	if err := db.First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("load document meta: %w", err)
	}

	var songs []SongRecord
	if err := db.Order("position").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("load songs: %w", err)
	}
	var events []EventRecord
	if err := db.Order("position").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	doc := &model.Document{
		Songs:  make([]model.Song, 0, len(songs)),
		Events: make([]model.Event, 0, len(events)),
	}
	for _, s := range songs {
		doc.Songs = append(doc.Songs, model.Song{
			ID:        s.ID,
			Name:      s.Name,
			Filename:  s.Filename,
			ClipStart: s.ClipStart,
			ClipEnd:   s.ClipEnd,
		})
	}
	for _, e := range events {
		doc.Events = append(doc.Events, model.Event{
			ID:     e.ID,
			Name:   e.Name,
			Time:   e.Time,
			Day:    e.Day,
			SongID: e.SongID,
		})
	}
	return doc, nil
}

// Save replaces both tables in one transaction.
func (r *GormDocumentRepository) Save(ctx context.Context, doc *model.Document) error {
	songs := make([]SongRecord, len(doc.Songs))
	for i, s := range doc.Songs {
		songs[i] = SongRecord{ID: s.ID, Position: i, Name: s.Name, Filename: s.Filename, ClipStart: s.ClipStart, ClipEnd: s.ClipEnd}
	}
	events := make([]EventRecord, len(doc.Events))
	for i, e := range doc.Events {
		events[i] = EventRecord{ID: e.ID, Position: i, Name: e.Name, Time: e.Time, Day: e.Day, SongID: e.SongID}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&SongRecord{}).Error; err != nil {
			return fmt.Errorf("clear songs: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&EventRecord{}).Error; err != nil {
			return fmt.Errorf("clear events: %w", err)
		}
		if len(songs) > 0 {
			if err := tx.CreateInBatches(songs, 100).Error; err != nil {
				return fmt.Errorf("insert songs: %w", err)
			}
		}
		if len(events) > 0 {
			if err := tx.CreateInBatches(events, 100).Error; err != nil {
				return fmt.Errorf("insert events: %w", err)
			}
		}
		return tx.Save(&DocumentMeta{ID: 1, SavedAt: time.Now()}).Error
	})
}
