package sgcarmart

import (
	"CarmartScraper/internal/browser"
	"CarmartScraper/internal/models"
	"CarmartScraper/internal/scraper"
	"context"
	"errors"
	"fmt"
	"log"
)

// ScrapeCarDetails extracts one record from a car's detail page.
func (s *Scraper) ScrapeCarDetails(ctx context.Context, page browser.Driver, url string) (*models.CarRecord, error) {
	if err := page.Navigate(ctx, url); err != nil {
		return nil, &scraper.DetailError{URL: url, Err: err}
	}
	if err := settle(ctx, page, browser.DocumentReady, browser.Present(browser.Selector(TitleSelector))); err != nil {
		return nil, &scraper.DetailError{URL: url, Err: fmt.Errorf("failed to wait for page: %w", err)}
	}

	record := &models.CarRecord{
		URL:          url,
		ScrapingDate: s.now().Format("2006-01-02"),
		Lookups:      make(map[string]models.FieldResult, len(DetailFields)),
	}
	for _, field := range DetailFields {
		res := GetField(ctx, page, field)
		if res.Status == models.FieldFailed {
			// A dead session or a cancelled run is not a missing field.
			if errors.Is(res.Err, browser.ErrSessionLost) || ctx.Err() != nil {
				return nil, &scraper.DetailError{URL: url, Err: res.Err}
			}
			log.Printf("Lookup of %s failed on %s: %v", field.Column, url, res.Err)
		}
		record.Lookups[field.Column] = res
		if err := record.Set(field.Column, res.Value()); err != nil {
			return nil, &scraper.DetailError{URL: url, Err: err}
		}
	}
	return record, nil
}
