package sgcarmart

import (
	"CarmartScraper/internal/browser"
	"CarmartScraper/internal/models"
	"CarmartScraper/internal/scraper"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCarDetails(t *testing.T) {
	srv := serve(t, map[string]string{"/used_cars/info.php?ID=101": detailPage})
	s := newScraper(srv)
	page := newDriver(t, srv)
	url := srv.URL + "/used_cars/info.php?ID=101"

	record, err := s.ScrapeCarDetails(context.Background(), page, url)
	require.NoError(t, err)

	assert.Equal(t, url, record.URL)
	assert.Equal(t, "2024-05-01", record.ScrapingDate)
	assert.Equal(t, models.Text("Honda Civic 1.6A VTi"), record.Title)
	assert.Equal(t, models.Text("$88,800"), record.Price)
	assert.Equal(t, models.Text("12-Mar-2019"), record.RegistrationDate)
	assert.Equal(t, models.Text("45,210 km (9.1k /yr)"), record.Mileage)
	assert.Equal(t, models.Text("1,597 cc"), record.EngineCap)
	assert.Equal(t, models.Text("Mid-Sized Sedan"), record.TypeOfVehicle)
	assert.Equal(t, models.Text("1"), record.NoOfOwners)
	assert.Equal(t, models.Text("Available for viewing"), record.Availability)

	// no Power row on the page
	assert.False(t, record.Power.Valid)
	assert.Equal(t, models.FieldAbsent, record.Lookups[models.ColPower].Status)
	assert.Len(t, record.Lookups, len(DetailFields))
}

func TestScrapeCarDetails_FailedFieldIsIsolated(t *testing.T) {
	srv := serve(t, map[string]string{"/used_cars/info.php?ID=101": detailPage})
	s := newScraper(srv)
	page := failOn{Driver: newDriver(t, srv), loc: browser.Label("Depreciation"), err: errors.New("stale node")}

	record, err := s.ScrapeCarDetails(context.Background(), page, srv.URL+"/used_cars/info.php?ID=101")
	require.NoError(t, err)

	assert.False(t, record.Depreciation.Valid)
	assert.Equal(t, models.FieldFailed, record.Lookups[models.ColDepreciation].Status)
	assert.Equal(t, models.Text("Auto"), record.Transmission)
	assert.Equal(t, models.Text("$37,000"), record.COE)
}

func TestScrapeCarDetails_LostSessionAborts(t *testing.T) {
	srv := serve(t, map[string]string{"/used_cars/info.php?ID=101": detailPage})
	s := newScraper(srv)
	page := failOn{Driver: newDriver(t, srv), loc: browser.Label("Mileage"), err: browser.ErrSessionLost}

	_, err := s.ScrapeCarDetails(context.Background(), page, srv.URL+"/used_cars/info.php?ID=101")
	var detailErr *scraper.DetailError
	require.ErrorAs(t, err, &detailErr)
	assert.ErrorIs(t, err, browser.ErrSessionLost)
}

func TestScrapeCarDetails_NavigationFailure(t *testing.T) {
	srv := serve(t, map[string]string{})
	s := newScraper(srv)
	url := srv.URL + "/used_cars/info.php?ID=404"

	_, err := s.ScrapeCarDetails(context.Background(), newDriver(t, srv), url)
	var detailErr *scraper.DetailError
	require.ErrorAs(t, err, &detailErr)
	assert.Equal(t, url, detailErr.URL)
}
