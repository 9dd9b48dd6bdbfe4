// Package browser is the automation surface the scraper drives: navigate,
// wait for readiness, query the DOM and read text or attributes.
// Engines: rod (default), chromedp and a plain HTTP fetcher backed by goquery.
package browser

import (
	"context"
	"fmt"
	"strings"
)

// LocatorKind selects how a Locator's query is interpreted.
type LocatorKind int

const (
	// CSS is a structural CSS selector.
	CSS LocatorKind = iota
	// LabelCell addresses the first <td> whose own text contains the query
	// and resolves to that cell's first following <td> sibling.
	LabelCell
)

// Locator addresses elements on the current page.
type Locator struct {
	Kind  LocatorKind
	Query string
}

// Selector builds a CSS locator.
func Selector(css string) Locator {
	return Locator{Kind: CSS, Query: css}
}

// Label builds a label-cell locator.
func Label(label string) Locator {
	return Locator{Kind: LabelCell, Query: label}
}

func (l Locator) String() string {
	if l.Kind == LabelCell {
		return fmt.Sprintf("label(%q)", l.Query)
	}
	return l.Query
}

// XPath renders a label locator as the equivalent XPath expression.
func (l Locator) XPath() string {
	return fmt.Sprintf("//td[contains(text(), %s)]/following-sibling::td", xpathLiteral(l.Query))
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape
// sequences, so strings holding both quote kinds are built with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// ConditionKind selects what a readiness wait checks for.
type ConditionKind int

const (
	// DocumentLoaded waits for document.readyState == "complete".
	DocumentLoaded ConditionKind = iota
	// ElementPresent waits until the locator matches at least one element.
	ElementPresent
)

// Condition is a readiness condition for Driver.Wait.
type Condition struct {
	Kind    ConditionKind
	Locator Locator
}

// DocumentReady waits for the page to finish loading.
var DocumentReady = Condition{Kind: DocumentLoaded}

// Present waits for an element matching loc.
func Present(loc Locator) Condition {
	return Condition{Kind: ElementPresent, Locator: loc}
}

func (c Condition) String() string {
	if c.Kind == ElementPresent {
		return "present " + c.Locator.String()
	}
	return "document ready"
}

// Element is a handle to one DOM element on the current page.
type Element interface {
	// Text returns the element's rendered text.
	Text(ctx context.Context) (string, error)
	// Attribute returns the raw attribute value and whether it is set.
	Attribute(ctx context.Context, name string) (string, bool, error)
}

// Driver is one exclusively owned browser session.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	// Wait blocks until cond holds, returning ErrWaitTimeout once the
	// driver's settle bound is exceeded.
	Wait(ctx context.Context, cond Condition) error
	// FindFirst returns the first match in document order, or nil, nil.
	FindFirst(ctx context.Context, loc Locator) (Element, error)
	FindAll(ctx context.Context, loc Locator) ([]Element, error)
	// URL is the address of the page currently loaded.
	URL() string
	// Quit ends the session. It is safe to call more than once.
	Quit() error
}
