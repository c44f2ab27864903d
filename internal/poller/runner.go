// internal/poller/runner.go
package poller

import (
	"context"
	"iter"
	"time"

	"github.com/tamzrod/benchpsu/internal/schema"
)

// Watch returns an endless sequence of poll cycles spaced by the configured
// interval. Cancellation is observed only between cycles.
//
// With ContinueOnError a failed cycle is logged and skipped. Otherwise the
// error is yielded once and the sequence ends.
// Breaking out of the range loop stops polling; every call to Watch starts
// a fresh sequence.
func (s *Session) Watch(ctx context.Context) iter.Seq2[*schema.DeviceState, error] {
	return func(yield func(*schema.DeviceState, error) bool) {
		for ctx.Err() == nil {
			st, err := s.RunOnce()
			switch {
			case err == nil:
				if !yield(st, nil) {
					return
				}
			case s.cfg.ContinueOnError:
				s.log.WithError(err).Error("Poll cycle failed")
			default:
				yield(nil, err)
				return
			}

			if !sleep(ctx, s.cfg.Interval) {
				return
			}
		}
	}
}

// sleep waits d or until ctx is done. Reports whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
