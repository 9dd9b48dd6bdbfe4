package browser

import (
	"CarmartScraper/utils"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// RodDriver drives a locally launched Chrome through go-rod.
type RodDriver struct {
	opts     Options
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	pid      int
	lastURL  string
	closed   bool
}

// LaunchRod starts a browser process and opens the single tab the session uses.
func LaunchRod(ctx context.Context, opts Options) (*RodDriver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(true)
	l.Set(flags.Flag("disable-gpu"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	if opts.BrowserBin != "" {
		l = l.Bin(opts.BrowserBin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}
	if opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent}); err != nil {
			log.Printf("Could not set user agent: %v", err)
		}
	}

	log.Printf("Browser launched (pid %d)", l.PID())
	return &RodDriver{
		opts:     opts,
		launcher: l,
		browser:  browser,
		page:     page,
		pid:      l.PID(),
	}, nil
}

// classify marks err as a lost session when the browser process is gone.
func (d *RodDriver) classify(err error) error {
	if err == nil {
		return nil
	}
	if !utils.ProcessAlive(d.pid) {
		return fmt.Errorf("%w: %w", ErrSessionLost, err)
	}
	return err
}

func (d *RodDriver) Navigate(ctx context.Context, url string) error {
	if d.closed {
		return ErrClosed
	}
	navCtx, cancel := d.opts.navigationContext(ctx)
	defer cancel()
	if err := d.page.Context(navCtx).Navigate(url); err != nil {
		return d.classify(fmt.Errorf("navigate %s: %w", url, err))
	}
	d.lastURL = url
	return nil
}

func (d *RodDriver) Wait(ctx context.Context, cond Condition) error {
	if d.closed {
		return ErrClosed
	}
	return d.classify(waitFor(ctx, d.opts.wait(), cond, d.documentComplete, d.FindFirst))
}

func (d *RodDriver) documentComplete(ctx context.Context) (bool, error) {
	res, err := d.page.Context(ctx).Eval(`() => document.readyState`)
	if err != nil {
		return false, err
	}
	return res.Value.Str() == "complete", nil
}

func (d *RodDriver) FindFirst(ctx context.Context, loc Locator) (Element, error) {
	if d.closed {
		return nil, ErrClosed
	}
	page := d.page.Context(ctx)
	var (
		has bool
		el  *rod.Element
		err error
	)
	if loc.Kind == LabelCell {
		has, el, err = page.HasX(loc.XPath())
	} else {
		has, el, err = page.Has(loc.Query)
	}
	if err != nil {
		return nil, d.classify(fmt.Errorf("query %s: %w", loc, err))
	}
	if !has {
		return nil, nil
	}
	return &rodElement{el: el}, nil
}

func (d *RodDriver) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	if d.closed {
		return nil, ErrClosed
	}
	page := d.page.Context(ctx)
	var (
		found rod.Elements
		err   error
	)
	if loc.Kind == LabelCell {
		found, err = page.ElementsX(loc.XPath())
	} else {
		found, err = page.Elements(loc.Query)
	}
	if err != nil {
		return nil, d.classify(fmt.Errorf("query all %s: %w", loc, err))
	}
	elements := make([]Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, &rodElement{el: el})
	}
	return elements, nil
}

func (d *RodDriver) URL() string {
	if !d.closed {
		if info, err := d.page.Info(); err == nil && info.URL != "" {
			return info.URL
		}
	}
	return d.lastURL
}

// Quit closes the browser and makes sure the process is gone.
func (d *RodDriver) Quit() error {
	if d.closed {
		return nil
	}
	d.closed = true

	err := d.browser.Close()
	if err != nil {
		log.Printf("Browser close failed: %v", err)
	}

	exited := Poll(context.Background(), WaitOptions{Timeout: 3 * time.Second, Interval: 100 * time.Millisecond}, func(context.Context) (bool, error) {
		return !utils.ProcessAlive(d.pid), nil
	})
	if exited != nil {
		log.Printf("Browser process %d still running, killing it", d.pid)
		d.launcher.Kill()
	}
	d.launcher.Cleanup()

	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *rodElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}
