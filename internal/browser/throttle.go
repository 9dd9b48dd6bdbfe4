package browser

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle paces navigations of the wrapped driver. Everything else passes
// straight through.
type Throttle struct {
	Driver
	limiter *rate.Limiter
}

// NewThrottle wraps d so that at most perSecond navigations start per second.
// A non-positive rate returns d unchanged.
func NewThrottle(d Driver, perSecond float64) Driver {
	if perSecond <= 0 {
		return d
	}
	return &Throttle{Driver: d, limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

func (t *Throttle) Navigate(ctx context.Context, url string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.Driver.Navigate(ctx, url)
}
