package alert

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bellsync/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisSignal(t *testing.T) (*RedisSignal, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSignal(client, "test:panic"), mr
}

func signals(t *testing.T) map[string]Signal {
	redisSignal, _ := newTestRedisSignal(t)
	return map[string]Signal{
		"memory": NewMemorySignal(),
		"redis":  redisSignal,
	}
}

func TestSignalStartsEmpty(t *testing.T) {
	for name, sig := range signals(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := sig.CheckAndConsume(context.Background())
			if err != nil {
				t.Fatalf("CheckAndConsume() = %v", err)
			}
			if rec != model.NoPanic() {
				t.Fatalf("CheckAndConsume() = %+v, want NONE", rec)
			}
			peeked, err := sig.Peek(context.Background())
			if err != nil {
				t.Fatalf("Peek() = %v", err)
			}
			if peeked.Status != model.PanicNone {
				t.Fatalf("Peek().Status = %q, want NONE", peeked.Status)
			}
		})
	}
}

func TestSignalDeliversOnce(t *testing.T) {
	for name, sig := range signals(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			submitted, err := sig.Submit(ctx, "panic_a.mp3")
			if err != nil {
				t.Fatalf("Submit() = %v", err)
			}
			if submitted.Status != model.PanicNew {
				t.Fatalf("Submit().Status = %q, want NEW", submitted.Status)
			}

			first, err := sig.CheckAndConsume(ctx)
			if err != nil {
				t.Fatalf("CheckAndConsume() = %v", err)
			}
			if first != submitted {
				t.Fatalf("first check = %+v, want %+v", first, submitted)
			}

			for i := 0; i < 2; i++ {
				again, err := sig.CheckAndConsume(ctx)
				if err != nil {
					t.Fatalf("CheckAndConsume() = %v", err)
				}
				if again != model.NoPanic() {
					t.Fatalf("check %d = %+v, want NONE", i+2, again)
				}
			}

			peeked, err := sig.Peek(ctx)
			if err != nil {
				t.Fatalf("Peek() = %v", err)
			}
			if peeked.Status != model.PanicPending || peeked.Filename != "panic_a.mp3" {
				t.Fatalf("Peek() = %+v, want PENDING panic_a.mp3", peeked)
			}
		})
	}
}

func TestSignalLatestSubmitWins(t *testing.T) {
	for name, sig := range signals(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := sig.Submit(ctx, "panic_old.mp3"); err != nil {
				t.Fatalf("Submit() = %v", err)
			}
			if _, err := sig.Submit(ctx, "panic_new.mp3"); err != nil {
				t.Fatalf("Submit() = %v", err)
			}

			rec, err := sig.CheckAndConsume(ctx)
			if err != nil {
				t.Fatalf("CheckAndConsume() = %v", err)
			}
			if rec.Filename != "panic_new.mp3" || rec.Status != model.PanicNew {
				t.Fatalf("CheckAndConsume() = %+v, want NEW panic_new.mp3", rec)
			}
		})
	}
}

func TestSignalResubmitAfterDelivery(t *testing.T) {
	for name, sig := range signals(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sig.Submit(ctx, "panic_1.mp3")
			sig.CheckAndConsume(ctx)
			sig.Submit(ctx, "panic_2.mp3")

			rec, err := sig.CheckAndConsume(ctx)
			if err != nil {
				t.Fatalf("CheckAndConsume() = %v", err)
			}
			if rec.Filename != "panic_2.mp3" || rec.Status != model.PanicNew {
				t.Fatalf("CheckAndConsume() = %+v, want NEW panic_2.mp3", rec)
			}
		})
	}
}

func TestSignalConcurrentConsumersSeeOneNew(t *testing.T) {
	for name, sig := range signals(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := sig.Submit(ctx, "panic_race.mp3"); err != nil {
				t.Fatalf("Submit() = %v", err)
			}

			var delivered atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					rec, err := sig.CheckAndConsume(ctx)
					if err != nil {
						t.Errorf("CheckAndConsume() = %v", err)
						return
					}
					if rec.Status == model.PanicNew {
						delivered.Add(1)
					}
				}()
			}
			wg.Wait()

			if got := delivered.Load(); got != 1 {
				t.Fatalf("NEW delivered %d times, want 1", got)
			}
		})
	}
}

func TestTimestampFormat(t *testing.T) {
	sig := NewMemorySignal()
	sig.now = func() time.Time {
		return time.Date(2024, 3, 1, 8, 30, 0, 123456000, time.UTC)
	}

	rec, _ := sig.Submit(context.Background(), "panic_t.mp3")
	if rec.Timestamp != "2024-03-01T08:30:00.123456Z" {
		t.Fatalf("Timestamp = %q, want 2024-03-01T08:30:00.123456Z", rec.Timestamp)
	}
}

func TestRedisSignalStoresHash(t *testing.T) {
	sig, mr := newTestRedisSignal(t)
	if _, err := sig.Submit(context.Background(), "panic_h.mp3"); err != nil {
		t.Fatalf("Submit() = %v", err)
	}

	if got := mr.HGet("test:panic", "filename"); got != "panic_h.mp3" {
		t.Fatalf("filename field = %q, want panic_h.mp3", got)
	}
	if got := mr.HGet("test:panic", "status"); got != "NEW" {
		t.Fatalf("status field = %q, want NEW", got)
	}
}
