package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// ChromedpDriver drives Chrome through chromedp. It is the alternative to
// RodDriver for hosts where the rod launcher cannot fetch or find a browser.
type ChromedpDriver struct {
	opts        Options
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	lastURL     string
	closed      bool
}

// LaunchChromedp starts the browser and its first tab.
func LaunchChromedp(ctx context.Context, opts Options) (*ChromedpDriver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.BrowserBin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.BrowserBin))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &ChromedpDriver{
		opts:        opts,
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}, nil
}

// run executes actions on the tab, bounded by timeout and by the caller's ctx.
func (d *ChromedpDriver) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if d.closed {
		return ErrClosed
	}
	runCtx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && d.ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrSessionLost, err)
	}
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (d *ChromedpDriver) Navigate(ctx context.Context, url string) error {
	var location string
	if err := d.run(ctx, d.opts.navigationTimeout(), chromedp.Navigate(url), chromedp.Location(&location)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	d.lastURL = location
	return nil
}

func (d *ChromedpDriver) Wait(ctx context.Context, cond Condition) error {
	if d.closed {
		return ErrClosed
	}
	return waitFor(ctx, d.opts.wait(), cond, d.documentComplete, d.FindFirst)
}

func (d *ChromedpDriver) documentComplete(ctx context.Context) (bool, error) {
	var state string
	if err := d.run(ctx, d.opts.wait().Timeout, chromedp.Evaluate(`document.readyState`, &state)); err != nil {
		return false, err
	}
	return state == "complete", nil
}

func (d *ChromedpDriver) nodes(ctx context.Context, loc Locator, all bool) ([]*cdp.Node, error) {
	by := chromedp.ByQuery
	query := loc.Query
	switch {
	case loc.Kind == LabelCell:
		by = chromedp.BySearch
		query = loc.XPath()
	case all:
		by = chromedp.ByQueryAll
	}
	var nodes []*cdp.Node
	if err := d.run(ctx, d.opts.wait().Timeout, chromedp.Nodes(query, &nodes, by, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("query %s: %w", loc, err)
	}
	return nodes, nil
}

func (d *ChromedpDriver) FindFirst(ctx context.Context, loc Locator) (Element, error) {
	nodes, err := d.nodes(ctx, loc, false)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return &chromedpElement{d: d, node: nodes[0]}, nil
}

func (d *ChromedpDriver) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	nodes, err := d.nodes(ctx, loc, true)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &chromedpElement{d: d, node: n})
	}
	return elements, nil
}

func (d *ChromedpDriver) URL() string {
	return d.lastURL
}

func (d *ChromedpDriver) Quit() error {
	if d.closed {
		return nil
	}
	d.closed = true
	err := chromedp.Cancel(d.ctx)
	d.cancelTab()
	d.cancelAlloc()
	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

type chromedpElement struct {
	d    *ChromedpDriver
	node *cdp.Node
}

func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var text string
	err := e.d.run(ctx, e.d.opts.wait().Timeout,
		chromedp.JavascriptAttribute([]cdp.NodeID{e.node.NodeID}, "innerText", &text, chromedp.ByNodeID))
	return text, err
}

func (e *chromedpElement) Attribute(ctx context.Context, name string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := e.d.run(ctx, e.d.opts.wait().Timeout,
		chromedp.AttributeValue([]cdp.NodeID{e.node.NodeID}, name, &value, &ok, chromedp.ByNodeID))
	return value, ok, err
}
