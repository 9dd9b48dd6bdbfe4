package crawler

import (
	"CarmartScraper/internal/browser"
	"CarmartScraper/internal/models"
	"CarmartScraper/internal/scraper"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver only records whether it was released.
type fakeDriver struct {
	browser.Driver
	quits   int
	quitErr error
}

func (d *fakeDriver) Quit() error {
	d.quits++
	return d.quitErr
}

// fakeScraper serves links per page and records per URL.
type fakeScraper struct {
	links    map[int][]string
	linkErr  map[int]error
	failures map[string]error
	visited  []string
}

func (s *fakeScraper) CollectCarLinks(_ context.Context, _ browser.Driver, pageNum int) ([]string, error) {
	if err := s.linkErr[pageNum]; err != nil {
		return nil, err
	}
	if links, ok := s.links[pageNum]; ok {
		return links, nil
	}
	return []string{}, nil
}

func (s *fakeScraper) ScrapeCarDetails(_ context.Context, _ browser.Driver, url string) (*models.CarRecord, error) {
	s.visited = append(s.visited, url)
	if err := s.failures[url]; err != nil {
		return nil, &scraper.DetailError{URL: url, Err: err}
	}
	return &models.CarRecord{URL: url, ScrapingDate: "2024-05-01", Title: models.Text("car " + url)}, nil
}

// recordingSink keeps a copy of every snapshot it is given.
type recordingSink struct {
	snapshots [][]string
	err       error
}

func (s *recordingSink) Save(_ context.Context, _ models.Run, records []models.CarRecord) error {
	if s.err != nil {
		return s.err
	}
	urls := make([]string, len(records))
	for i, r := range records {
		urls[i] = r.URL
	}
	s.snapshots = append(s.snapshots, urls)
	return nil
}

func urls(records []models.CarRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.URL
	}
	return out
}

func newTestCrawler(s scraper.Scraper, sink Sink) (*Crawler, *fakeDriver, *bytes.Buffer) {
	driver := &fakeDriver{}
	var logs bytes.Buffer
	c := New(func(context.Context) (browser.Driver, error) { return driver, nil }, s, sink,
		models.NewRun(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)))
	c.Logger = log.New(&logs, "", 0)
	return c, driver, &logs
}

func TestRun_KeepsPageThenLinkOrder(t *testing.T) {
	s := &fakeScraper{links: map[int][]string{
		1: {"u1", "u2"},
		2: {"u3"},
		3: {"u4", "u5"},
	}}
	sink := &recordingSink{}
	c, driver, logs := newTestCrawler(s, sink)

	records, err := c.Run(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"u1", "u2", "u3", "u4", "u5"}, urls(records))
	assert.Equal(t, [][]string{
		{"u1", "u2"},
		{"u1", "u2", "u3"},
		{"u1", "u2", "u3", "u4", "u5"},
	}, sink.snapshots)
	assert.Equal(t, 1, driver.quits)
	assert.Equal(t, DriverClosed, c.State())
	assert.Contains(t, logs.String(), "Scraping page 1...")
	assert.Contains(t, logs.String(), "Successfully scraped: car u5")
}

func TestRun_SkipsFailedDetailPage(t *testing.T) {
	s := &fakeScraper{
		links:    map[int][]string{1: {"u1", "u2"}},
		failures: map[string]error{"u2": errors.New("timeout")},
	}
	sink := &recordingSink{}
	c, _, logs := newTestCrawler(s, sink)

	records, err := c.Run(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, urls(records))
	assert.Equal(t, [][]string{{"u1"}}, sink.snapshots)
	assert.Equal(t, 1, strings.Count(logs.String(), "Failed to scrape details from u2"))
}

func TestRun_SnapshotsGrowAsSupersets(t *testing.T) {
	s := &fakeScraper{links: map[int][]string{1: {"r1"}, 2: {"r2"}}}
	sink := &recordingSink{}
	c, _, _ := newTestCrawler(s, sink)

	_, err := c.Run(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"r1"}, {"r1", "r2"}}, sink.snapshots)
}

func TestRun_EmptyPagesStillSave(t *testing.T) {
	s := &fakeScraper{links: map[int][]string{2: {"u1"}}}
	sink := &recordingSink{}
	c, _, _ := newTestCrawler(s, sink)

	records, err := c.Run(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, urls(records))
	assert.Equal(t, [][]string{{}, {"u1"}, {"u1"}}, sink.snapshots)
}

func TestRun_ZeroPages(t *testing.T) {
	s := &fakeScraper{}
	sink := &recordingSink{}
	c, driver, _ := newTestCrawler(s, sink)

	records, err := c.Run(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Empty(t, sink.snapshots)
	assert.Equal(t, 1, driver.quits)
}

func TestRun_InvalidArguments(t *testing.T) {
	c, driver, _ := newTestCrawler(&fakeScraper{}, &recordingSink{})

	_, err := c.Run(context.Background(), 0, 1)
	assert.Error(t, err)
	_, err = c.Run(context.Background(), 1, -1)
	assert.Error(t, err)
	assert.Equal(t, 0, driver.quits)
}

func TestRun_PageErrorReleasesDriver(t *testing.T) {
	s := &fakeScraper{
		links:   map[int][]string{1: {"u1"}},
		linkErr: map[int]error{2: errors.New("listing did not load")},
	}
	sink := &recordingSink{}
	c, driver, _ := newTestCrawler(s, sink)

	records, err := c.Run(context.Background(), 1, 3)
	var pageErr *PageError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 2, pageErr.Page)
	assert.Equal(t, []string{"u1"}, urls(records))
	assert.Equal(t, [][]string{{"u1"}}, sink.snapshots)
	assert.Equal(t, 1, driver.quits)
	assert.Equal(t, DriverClosed, c.State())
}

func TestRun_FirstPageErrorReleasesDriver(t *testing.T) {
	s := &fakeScraper{linkErr: map[int]error{1: errors.New("boom")}}
	c, driver, _ := newTestCrawler(s, &recordingSink{})

	records, err := c.Run(context.Background(), 1, 1)
	var pageErr *PageError
	require.ErrorAs(t, err, &pageErr)
	assert.Empty(t, records)
	assert.Equal(t, 1, driver.quits)
}

func TestRun_LaunchFailure(t *testing.T) {
	launchErr := errors.New("no chrome")
	c := New(func(context.Context) (browser.Driver, error) { return nil, launchErr },
		&fakeScraper{}, &recordingSink{}, models.Run{})

	_, err := c.Run(context.Background(), 1, 1)
	var driverErr *DriverError
	require.ErrorAs(t, err, &driverErr)
	assert.Equal(t, "launch", driverErr.Op)
	assert.ErrorIs(t, err, launchErr)
	assert.Equal(t, NotStarted, c.State())
}

func TestRun_LostSessionAborts(t *testing.T) {
	s := &fakeScraper{
		links:    map[int][]string{1: {"u1", "u2", "u3"}, 2: {"u4"}},
		failures: map[string]error{"u2": fmt.Errorf("%w: websocket closed", browser.ErrSessionLost)},
	}
	sink := &recordingSink{}
	c, driver, _ := newTestCrawler(s, sink)

	records, err := c.Run(context.Background(), 1, 2)
	var driverErr *DriverError
	require.ErrorAs(t, err, &driverErr)
	assert.ErrorIs(t, err, browser.ErrSessionLost)
	assert.Equal(t, []string{"u1"}, urls(records))
	assert.Equal(t, []string{"u1", "u2"}, s.visited)
	assert.Empty(t, sink.snapshots)
	assert.Equal(t, 1, driver.quits)
}

func TestRun_SinkFailureAborts(t *testing.T) {
	s := &fakeScraper{links: map[int][]string{1: {"u1"}, 2: {"u2"}}}
	sink := &recordingSink{err: errors.New("disk full")}
	c, driver, _ := newTestCrawler(s, sink)

	records, err := c.Run(context.Background(), 1, 2)
	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, 1, sinkErr.Page)
	assert.Equal(t, []string{"u1"}, urls(records))
	assert.Equal(t, 1, driver.quits)
}

func TestRun_QuitErrorIsOnlyLogged(t *testing.T) {
	s := &fakeScraper{links: map[int][]string{1: {"u1"}}}
	sink := &recordingSink{}
	c, driver, logs := newTestCrawler(s, sink)
	driver.quitErr = errors.New("already gone")

	records, err := c.Run(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, urls(records))
	assert.Equal(t, [][]string{{"u1"}}, sink.snapshots)
	assert.Contains(t, logs.String(), "Failed to close browser: already gone")
	assert.Equal(t, DriverClosed, c.State())
}

func TestNew_KeepsRunInfo(t *testing.T) {
	run := models.NewRun(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	c := New(nil, &fakeScraper{}, &recordingSink{}, run)
	assert.Equal(t, run, c.RunInfo)
}

func TestRun_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &cancellingScraper{fakeScraper: fakeScraper{links: map[int][]string{1: {"u1", "u2"}}}, cancel: cancel}
	c, driver, _ := newTestCrawler(s, &recordingSink{})

	records, err := c.Run(ctx, 1, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, records)
	assert.Equal(t, 1, driver.quits)
}

// cancellingScraper cancels the run while scraping its first detail page.
type cancellingScraper struct {
	fakeScraper
	cancel context.CancelFunc
}

func (s *cancellingScraper) ScrapeCarDetails(ctx context.Context, _ browser.Driver, url string) (*models.CarRecord, error) {
	s.cancel()
	return nil, &scraper.DetailError{URL: url, Err: ctx.Err()}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "extracting details", ExtractingDetails.String())
	assert.Equal(t, "State(42)", State(42).String())
}
