package sgcarmart

import (
	"CarmartScraper/internal/browser"
	"CarmartScraper/internal/models"
	"context"
	"fmt"
	"strings"
)

// GetBySelector reads the trimmed text of the first element matching css.
func GetBySelector(ctx context.Context, page browser.Driver, css string) models.FieldResult {
	return lookup(ctx, page, browser.Selector(css))
}

// GetByLabel reads the cell that follows the first table cell containing label.
func GetByLabel(ctx context.Context, page browser.Driver, label string) models.FieldResult {
	return lookup(ctx, page, browser.Label(label))
}

// GetField applies one field rule to the current page.
func GetField(ctx context.Context, page browser.Driver, rule models.FieldSpec) models.FieldResult {
	if rule.Kind == models.ByLabel {
		return GetByLabel(ctx, page, rule.Query)
	}
	return GetBySelector(ctx, page, rule.Query)
}

func lookup(ctx context.Context, page browser.Driver, loc browser.Locator) models.FieldResult {
	el, err := page.FindFirst(ctx, loc)
	if err != nil {
		return models.Failed(err)
	}
	if el == nil {
		return models.Absent()
	}
	text, err := el.Text(ctx)
	if err != nil {
		return models.Failed(fmt.Errorf("read text of %s: %w", loc, err))
	}
	return models.Found(strings.TrimSpace(text))
}
