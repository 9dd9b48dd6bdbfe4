package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// DocumentDriver fetches pages over plain HTTP and queries the parsed
// document with goquery. Nothing is rendered and no script runs, so it only
// suits pages whose content is in the served HTML.
type DocumentDriver struct {
	opts   Options
	client *http.Client
	doc    *goquery.Document
	url    string
	closed bool
}

func NewDocumentDriver(opts Options, client *http.Client) *DocumentDriver {
	if client == nil {
		client = http.DefaultClient
	}
	return &DocumentDriver{opts: opts, client: client}
}

func (d *DocumentDriver) Navigate(ctx context.Context, url string) error {
	if d.closed {
		return ErrClosed
	}
	ctx, cancel := d.opts.navigationContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	if d.opts.UserAgent != "" {
		req.Header.Set("User-Agent", d.opts.UserAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("navigate %s: received non-200 status code: %d", url, resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	root, err := html.Parse(body)
	if err != nil {
		return fmt.Errorf("navigate %s: could not parse html: %w", url, err)
	}

	d.doc = goquery.NewDocumentFromNode(root)
	d.url = resp.Request.URL.String()
	return nil
}

func (d *DocumentDriver) Wait(ctx context.Context, cond Condition) error {
	if d.closed {
		return ErrClosed
	}
	return waitFor(ctx, d.opts.wait(), cond, func(context.Context) (bool, error) {
		return d.doc != nil, nil
	}, d.FindFirst)
}

func (d *DocumentDriver) find(loc Locator) *goquery.Selection {
	if loc.Kind != LabelCell {
		return d.doc.Find(loc.Query)
	}
	var cells []*html.Node
	d.doc.Find("td").
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(firstTextChild(s.Nodes[0]), loc.Query)
		}).
		Each(func(_ int, s *goquery.Selection) {
			cells = append(cells, s.NextAllFiltered("td").Nodes...)
		})
	return d.doc.FindNodes(cells...)
}

// firstTextChild mirrors XPath text() inside contains(): the string value of
// the first text node child.
func firstTextChild(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data
		}
	}
	return ""
}

func (d *DocumentDriver) FindFirst(ctx context.Context, loc Locator) (Element, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if d.doc == nil {
		return nil, fmt.Errorf("query %s: no page loaded", loc)
	}
	sel := d.find(loc).First()
	if sel.Length() == 0 {
		return nil, nil
	}
	return docElement{sel: sel}, nil
}

func (d *DocumentDriver) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if d.doc == nil {
		return nil, fmt.Errorf("query all %s: no page loaded", loc)
	}
	var elements []Element
	d.find(loc).Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, docElement{sel: s})
	})
	return elements, nil
}

func (d *DocumentDriver) URL() string {
	return d.url
}

func (d *DocumentDriver) Quit() error {
	d.closed = true
	d.doc = nil
	return nil
}

type docElement struct {
	sel *goquery.Selection
}

func (e docElement) Text(context.Context) (string, error) {
	return e.sel.Text(), nil
}

func (e docElement) Attribute(_ context.Context, name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}
