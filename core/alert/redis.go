package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bellsync/model"

	"github.com/redis/go-redis/v9"
)

// consumeScript flips NEW to PENDING and returns the delivered fields in one
// round trip, so two servers sharing the key never both deliver.
var consumeScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'status') ~= 'NEW' then
	return false
end
redis.call('HSET', KEYS[1], 'status', 'PENDING')
return redis.call('HMGET', KEYS[1], 'filename', 'timestamp')
`)

// RedisSignal stores the record as a hash so every server process pointed at
// the same key shares one slot.
type RedisSignal struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

func NewRedisSignal(client redis.UniversalClient, key string) *RedisSignal {
	return &RedisSignal{client: client, key: key, now: time.Now}
}

func (s *RedisSignal) Submit(ctx context.Context, filename string) (model.PanicRecord, error) {
	rec := newRecord(filename, s.now())
	err := s.client.HSet(ctx, s.key,
		"filename", rec.Filename,
		"timestamp", rec.Timestamp,
		"status", string(rec.Status),
	).Err()
	if err != nil {
		return model.PanicRecord{}, fmt.Errorf("store panic record: %w", err)
	}
	return rec, nil
}

func (s *RedisSignal) CheckAndConsume(ctx context.Context) (model.PanicRecord, error) {
	vals, err := consumeScript.Run(ctx, s.client, []string{s.key}).StringSlice()
	if errors.Is(err, redis.Nil) {
		return model.NoPanic(), nil
	}
	if err != nil {
		return model.PanicRecord{}, fmt.Errorf("consume panic record: %w", err)
	}
	if len(vals) != 2 {
		return model.PanicRecord{}, fmt.Errorf("consume panic record: unexpected reply %v", vals)
	}
	return model.PanicRecord{Filename: vals[0], Timestamp: vals[1], Status: model.PanicNew}, nil
}

func (s *RedisSignal) Peek(ctx context.Context) (model.PanicRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return model.PanicRecord{}, fmt.Errorf("read panic record: %w", err)
	}
	if len(fields) == 0 {
		return model.NoPanic(), nil
	}
	return model.PanicRecord{
		Filename:  fields["filename"],
		Timestamp: fields["timestamp"],
		Status:    model.PanicStatus(fields["status"]),
	}, nil
}
