// Package alert holds the shared panic slot and the service that fills it.
package alert

import (
	"context"
	"time"

	"bellsync/model"
)

// timestampLayout is ISO-8601 with microseconds and the local offset.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Signal is the single process-wide panic record.
//
// Submit overwrites the record with a NEW entry. CheckAndConsume hands a NEW
// record to exactly one caller and leaves it PENDING; every other caller, and
// every later one, sees NONE until the next Submit.
type Signal interface {
	Submit(ctx context.Context, filename string) (model.PanicRecord, error)
	CheckAndConsume(ctx context.Context) (model.PanicRecord, error)
	// Peek reads the stored record without consuming it.
	Peek(ctx context.Context) (model.PanicRecord, error)
}

func newRecord(filename string, now time.Time) model.PanicRecord {
	return model.PanicRecord{
		Filename:  filename,
		Timestamp: now.Format(timestampLayout),
		Status:    model.PanicNew,
	}
}
