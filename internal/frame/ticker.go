package frame

import (
	"context"
	"errors"
	"time"
)

// ErrIdle is returned by Pump when no callback is left to fire.
var ErrIdle = errors.New("frame: nothing scheduled")

// Pump fires q every interval until ctx is done or the queue runs dry. after,
// if non-nil, runs on the same goroutine right after each Fire that ran at
// least one callback.
func Pump(ctx context.Context, q *Queue, interval time.Duration, after func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if q.Pending() == 0 {
			return ErrIdle
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if q.Fire() > 0 && after != nil {
				after()
			}
		}
	}
}

// Interval converts a ticks-per-second rate to a period.
func Interval(tps int) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}
