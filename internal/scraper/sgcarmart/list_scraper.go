package sgcarmart

import (
	"CarmartScraper/internal/browser"
	"CarmartScraper/utils"
	"context"
	"errors"
	"fmt"
	"log"
)

// ListingURL is the address of one listing page.
func (s *Scraper) ListingURL(pageNum int) string {
	return s.SiteConf.BaseURL + fmt.Sprintf(s.SiteConf.ListingPath, pageNum)
}

// CollectCarLinks returns the detail-page links on listing page pageNum.
func (s *Scraper) CollectCarLinks(ctx context.Context, page browser.Driver, pageNum int) ([]string, error) {
	if pageNum < 1 {
		return nil, fmt.Errorf("invalid page number %d", pageNum)
	}
	listingURL := s.ListingURL(pageNum)

	if err := page.Navigate(ctx, listingURL); err != nil {
		return nil, err
	}
	if err := settle(ctx, page, browser.DocumentReady); err != nil {
		return nil, fmt.Errorf("failed to wait for listing page %d: %w", pageNum, err)
	}

	carLinks := browser.Selector(CarLinkSelector)
	err := page.Wait(ctx, browser.Present(carLinks))
	if errors.Is(err, browser.ErrWaitTimeout) {
		log.Printf("No car listings found on page %d", pageNum)
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to wait for listings on page %d: %w", pageNum, err)
	}

	elements, err := page.FindAll(ctx, carLinks)
	if err != nil {
		return nil, err
	}

	base := page.URL()
	if base == "" {
		base = listingURL
	}
	links := make([]string, 0, len(elements))
	for i, el := range elements {
		href, ok, err := el.Attribute(ctx, "href")
		if err != nil {
			return nil, fmt.Errorf("failed to read link %d on page %d: %w", i+1, pageNum, err)
		}
		if !ok {
			continue
		}
		if link := utils.ResolveURL(base, href); link != "" {
			links = append(links, link)
		}
	}
	return links, nil
}
