package app

import (
	"CarmartScraper/internal/browser"
	"CarmartScraper/internal/crawler"
	"CarmartScraper/internal/database"
	"CarmartScraper/internal/export"
	"CarmartScraper/internal/models"
	"CarmartScraper/internal/scraper/sgcarmart"
	"CarmartScraper/pkg/config"
	"CarmartScraper/utils"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// previewRows is how many records the summary shows.
const previewRows = 5

// App is the main application structure holding all dependencies.
type App struct {
	Config *config.Config
	Repo   *database.DBRepository
	Out    io.Writer
}

// New creates a new application instance. The SQLite snapshot is opened only
// when output.database is set.
func New(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Out: os.Stdout}
	if cfg.Output.Database != "" {
		repo, err := database.InitDB(cfg.Output.Database)
		if err != nil {
			return nil, err
		}
		a.Repo = repo
	}
	return a, nil
}

// Close releases the database, if one is open.
func (a *App) Close() {
	if a.Repo != nil {
		a.Repo.Close()
	}
}

func (a *App) browserOptions() browser.Options {
	sc := a.Config.Scraper
	return browser.Options{
		Headless:             sc.Headless,
		BrowserBin:           sc.BrowserBin,
		UserAgent:            sc.UserAgent,
		NavigationTimeout:    sc.NavigationTimeout,
		SettleTimeout:        sc.SettleTimeout,
		PollInterval:         sc.PollInterval,
		NavigationsPerSecond: sc.NavigationsPerSecond,
	}
}

func (a *App) sink() crawler.Sink {
	sinks := export.MultiSink{export.NewCSVSink(a.Config.Output.Dir, a.Config.Output.CSVPrefix)}
	if a.Repo != nil {
		sinks = append(sinks, a.Repo)
	}
	return sinks
}

// RunCrawl scrapes the configured listing pages and prints a summary of what
// was collected. Records saved before a failure stay on disk.
func (a *App) RunCrawl(ctx context.Context) error {
	log.Println("--- Starting sgcarmart Crawl ---")

	run := models.NewRun(time.Now())
	engine := a.Config.Scraper.Engine
	opts := a.browserOptions()
	launch := func(ctx context.Context) (browser.Driver, error) {
		return browser.Launch(ctx, engine, opts)
	}

	c := crawler.New(launch, sgcarmart.New(a.Config.Site), a.sink(), run)
	records, err := c.Run(ctx, a.Config.Scraper.StartPage, a.Config.Scraper.NumPages)
	PrintSummary(a.Out, records)
	if err != nil {
		return fmt.Errorf("crawl %s stopped after %d cars: %w", run.ID, len(records), err)
	}

	log.Printf("--- Crawl %s Finished ---", run.ID)
	return nil
}

// ShowLatest prints the most recent snapshot stored in SQLite.
func (a *App) ShowLatest(ctx context.Context) error {
	if a.Repo == nil {
		return fmt.Errorf("no database configured (output.database is empty)")
	}
	run, err := a.Repo.LatestRun()
	if err != nil {
		return fmt.Errorf("failed to get latest run: %w", err)
	}
	records, err := a.Repo.GetCars(models.CarFilters{RunID: run.ID})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Run %s (%s), last saved %s\n", run.ID, run.Day, run.UpdatedAt)
	PrintSummary(a.Out, records)
	return nil
}

// PrintSummary writes the record count and the first rows of a result set.
func PrintSummary(w io.Writer, records []models.CarRecord) {
	fmt.Fprintf(w, "Number of cars: %d\n", len(records))
	if len(records) == 0 {
		return
	}
	fmt.Fprintln(w, strings.Join(models.CarColumns, " | "))
	for i := 0; i < len(records) && i < previewRows; i++ {
		row := records[i].Row()
		for j := range row {
			row[j] = utils.Truncate(row[j], 30)
		}
		fmt.Fprintln(w, strings.Join(row, " | "))
	}
}
