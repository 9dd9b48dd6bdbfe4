package sgcarmart

import (
	"CarmartScraper/internal/browser"
	"CarmartScraper/internal/scraper"
	"CarmartScraper/pkg/config"
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// Scraper crawls the sgcarmart used-car listings.
type Scraper struct {
	SiteConf config.SiteConfig
	// Now stamps scraping_date; defaults to time.Now.
	Now func() time.Time
}

var _ scraper.Scraper = (*Scraper)(nil)

// New creates a scraper for the configured site.
func New(siteConf config.SiteConfig) *Scraper {
	siteConf.BaseURL = strings.TrimRight(siteConf.BaseURL, "/")
	return &Scraper{SiteConf: siteConf, Now: time.Now}
}

func (s *Scraper) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// settle waits for each condition in turn. A condition that does not hold in
// time is logged and skipped; the page is read as it is.
func settle(ctx context.Context, page browser.Driver, conds ...browser.Condition) error {
	for _, cond := range conds {
		err := page.Wait(ctx, cond)
		if errors.Is(err, browser.ErrWaitTimeout) {
			log.Printf("Timed out waiting for %s on %s, reading page as is", cond, page.URL())
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
