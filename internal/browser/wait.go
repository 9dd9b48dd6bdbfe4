package browser

import (
	"context"
	"time"
)

// Clock is the time source used by readiness waits.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// WaitOptions bound a readiness wait.
type WaitOptions struct {
	Timeout  time.Duration
	Interval time.Duration
	Clock    Clock
}

func (o WaitOptions) withDefaults() WaitOptions {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.Interval <= 0 {
		o.Interval = 250 * time.Millisecond
	}
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	return o
}

// Poll calls probe until it reports true, returns an error, the context ends
// or the timeout elapses. The probe always runs at least once, and once more
// at or after the deadline.
func Poll(ctx context.Context, opts WaitOptions, probe func(context.Context) (bool, error)) error {
	opts = opts.withDefaults()
	deadline := opts.Clock.Now().Add(opts.Timeout)
	for {
		ok, err := probe(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if !opts.Clock.Now().Before(deadline) {
			return ErrWaitTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-opts.Clock.After(opts.Interval):
		}
	}
}

// waitFor runs the generic condition probe used by every engine.
func waitFor(ctx context.Context, opts WaitOptions, cond Condition, ready func(context.Context) (bool, error), find func(context.Context, Locator) (Element, error)) error {
	return Poll(ctx, opts, func(ctx context.Context) (bool, error) {
		if cond.Kind == ElementPresent {
			el, err := find(ctx, cond.Locator)
			if err != nil {
				return false, err
			}
			return el != nil, nil
		}
		return ready(ctx)
	})
}
