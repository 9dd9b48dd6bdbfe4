package browser

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Engines understood by Launch.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
	EngineHTTP     = "http"
)

// Options configure a browser session.
type Options struct {
	Headless          bool
	BrowserBin        string
	UserAgent         string
	NavigationTimeout time.Duration
	SettleTimeout     time.Duration
	PollInterval      time.Duration
	// NavigationsPerSecond paces Navigate calls; zero disables pacing.
	NavigationsPerSecond float64
	Clock                Clock
}

func (o Options) navigationTimeout() time.Duration {
	if o.NavigationTimeout <= 0 {
		return 30 * time.Second
	}
	return o.NavigationTimeout
}

// navigationContext bounds one navigation. The caller must call cancel.
func (o Options) navigationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.navigationTimeout())
}

func (o Options) wait() WaitOptions {
	return WaitOptions{Timeout: o.SettleTimeout, Interval: o.PollInterval, Clock: o.Clock}.withDefaults()
}

// Launch starts a session on the named engine, wrapped in navigation pacing
// when configured.
func Launch(ctx context.Context, engine string, opts Options) (Driver, error) {
	var (
		d   Driver
		err error
	)
	switch engine {
	case EngineRod, "":
		d, err = LaunchRod(ctx, opts)
	case EngineChromedp:
		d, err = LaunchChromedp(ctx, opts)
	case EngineHTTP:
		d = NewDocumentDriver(opts, &http.Client{Timeout: opts.navigationTimeout()})
	default:
		return nil, fmt.Errorf("unknown browser engine %q", engine)
	}
	if err != nil {
		return nil, err
	}
	return NewThrottle(d, opts.NavigationsPerSecond), nil
}
