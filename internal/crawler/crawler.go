package crawler

import (
	"CarmartScraper/internal/browser"
	"CarmartScraper/internal/models"
	"CarmartScraper/internal/scraper"
	"context"
	"errors"
	"fmt"
	"log"
)

// Sink persists the records accumulated so far. Every call receives the
// full set and replaces what the previous call wrote for the same run.
type Sink interface {
	Save(ctx context.Context, run models.Run, records []models.CarRecord) error
}

// LaunchFunc opens the browser session a run uses.
type LaunchFunc func(ctx context.Context) (browser.Driver, error)

// State is where a run currently is.
type State int

const (
	NotStarted State = iota
	DriverActive
	CollectingLinks
	ExtractingDetails
	Persisting
	DriverClosed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case DriverActive:
		return "driver active"
	case CollectingLinks:
		return "collecting links"
	case ExtractingDetails:
		return "extracting details"
	case Persisting:
		return "persisting"
	case DriverClosed:
		return "driver closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Crawler walks listing pages in order, scrapes every linked detail page and
// saves a snapshot after each listing page.
type Crawler struct {
	Launch  LaunchFunc
	Scraper scraper.Scraper
	Sink    Sink
	RunInfo models.Run
	Logger  *log.Logger

	state State
}

// New creates a crawler logging to the standard logger.
func New(launch LaunchFunc, s scraper.Scraper, sink Sink, run models.Run) *Crawler {
	return &Crawler{Launch: launch, Scraper: s, Sink: sink, RunInfo: run, Logger: log.Default()}
}

// State reports the crawler's position in the run.
func (c *Crawler) State() State {
	return c.state
}

func (c *Crawler) logf(format string, args ...interface{}) {
	if c.Logger == nil {
		log.Printf(format, args...)
		return
	}
	c.Logger.Printf(format, args...)
}

// Run crawls numPages listing pages starting at startPage and returns every
// record extracted, in page order and then link order. The browser session
// is released on every return path. When the run aborts, the records
// gathered before the failure are returned alongside the error.
func (c *Crawler) Run(ctx context.Context, startPage, numPages int) (records []models.CarRecord, err error) {
	if startPage < 1 {
		return nil, fmt.Errorf("start page must be positive, got %d", startPage)
	}
	if numPages < 0 {
		return nil, fmt.Errorf("number of pages must not be negative, got %d", numPages)
	}

	page, err := c.Launch(ctx)
	if err != nil {
		return nil, &DriverError{Op: "launch", Err: err}
	}
	c.state = DriverActive
	defer func() {
		// Snapshots are already saved; a failed close is only logged.
		if quitErr := page.Quit(); quitErr != nil {
			c.logf("Failed to close browser: %v", quitErr)
		}
		c.state = DriverClosed
	}()

	records = []models.CarRecord{}
	for pageNum := startPage; pageNum < startPage+numPages; pageNum++ {
		c.logf("Scraping page %d...", pageNum)

		c.state = CollectingLinks
		links, err := c.Scraper.CollectCarLinks(ctx, page, pageNum)
		if err != nil {
			if errors.Is(err, browser.ErrSessionLost) {
				return records, &DriverError{Op: "collect links", Err: &PageError{Page: pageNum, Err: err}}
			}
			return records, &PageError{Page: pageNum, Err: err}
		}
		c.logf("Found %d cars on page %d", len(links), pageNum)

		c.state = ExtractingDetails
		for _, link := range links {
			record, err := c.Scraper.ScrapeCarDetails(ctx, page, link)
			if err != nil {
				if errors.Is(err, browser.ErrSessionLost) {
					return records, &DriverError{Op: "scrape details", Err: err}
				}
				if ctxErr := ctx.Err(); ctxErr != nil {
					return records, ctxErr
				}
				c.logf("Failed to scrape details from %s: %v", link, err)
				continue
			}
			records = append(records, *record)
			c.logf("Successfully scraped: %s", record.Title.String)
		}

		c.state = Persisting
		if err := c.Sink.Save(ctx, c.RunInfo, records); err != nil {
			return records, &SinkError{Page: pageNum, Err: err}
		}
		c.logf("Saved %d cars after page %d", len(records), pageNum)
	}
	return records, nil
}
