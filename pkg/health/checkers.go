package health

import (
	"context"
	"runtime"

	"github.com/go-faster/errors"
)

// Pinger is satisfied by pgxpool.Pool and database handles alike.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck probes a backing store's connectivity.
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return errors.Wrap(err, "ping")
		}
		return nil
	}
}

// GoroutineCountCheck flags goroutine leaks: it fails once the process
// exceeds threshold goroutines.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}
