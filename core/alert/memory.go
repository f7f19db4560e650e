package alert

import (
	"context"
	"sync"
	"time"

	"bellsync/model"
)

// MemorySignal keeps the record in process memory; it is lost on restart.
type MemorySignal struct {
	mu     sync.Mutex
	record model.PanicRecord
	now    func() time.Time
}

func NewMemorySignal() *MemorySignal {
	return &MemorySignal{record: model.NoPanic(), now: time.Now}
}

func (s *MemorySignal) Submit(ctx context.Context, filename string) (model.PanicRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = newRecord(filename, s.now())
	return s.record, nil
}

func (s *MemorySignal) CheckAndConsume(ctx context.Context) (model.PanicRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record.Status != model.PanicNew {
		return model.NoPanic(), nil
	}
	delivered := s.record
	s.record.Status = model.PanicPending
	return delivered, nil
}

func (s *MemorySignal) Peek(ctx context.Context) (model.PanicRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record, nil
}
