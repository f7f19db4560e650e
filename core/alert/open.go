package alert

import (
	"context"
	"fmt"

	"bellsync/config"
	"bellsync/db"
)

// OpenSignal builds the signal selected by PANIC_BACKEND. The returned close
// function releases any connection it opened.
func OpenSignal(ctx context.Context, cfg *config.Config) (Signal, func() error, error) {
	switch cfg.PanicBackend {
	case config.PanicBackendMemory:
		return NewMemorySignal(), func() error { return nil }, nil
	case config.PanicBackendRedis:
		client, err := db.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisSignal(client, cfg.PanicKey), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown panic backend %q", cfg.PanicBackend)
	}
}
