package scraper

import (
	"CarmartScraper/internal/browser"
	"CarmartScraper/internal/models"
	"context"
	"fmt"
)

// Scraper defines the two-level crawl a marketplace site must support.
// The page handle is owned by the caller and reused across calls.
type Scraper interface {
	// CollectCarLinks returns the detail-page URLs on one listing page,
	// in document order. A page without listings yields an empty slice.
	CollectCarLinks(ctx context.Context, page browser.Driver, pageNum int) ([]string, error)

	// ScrapeCarDetails visits one detail page and builds its record.
	// Missing fields never fail the call; only navigation or an
	// unexpected failure does, as a *DetailError.
	ScrapeCarDetails(ctx context.Context, page browser.Driver, url string) (*models.CarRecord, error)
}

// DetailError reports that no record could be built for URL.
type DetailError struct {
	URL string
	Err error
}

func (e *DetailError) Error() string {
	return fmt.Sprintf("scrape details %s: %v", e.URL, e.Err)
}

func (e *DetailError) Unwrap() error {
	return e.Err
}
