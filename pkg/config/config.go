package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ScraperConfig holds general crawl and browser settings.
type ScraperConfig struct {
	Engine            string        `yaml:"engine"` // rod, chromedp or http
	Headless          bool          `yaml:"headless"`
	BrowserBin        string        `yaml:"browser_bin"`
	UserAgent         string        `yaml:"user_agent"`
	StartPage         int           `yaml:"start_page"`
	NumPages          int           `yaml:"num_pages"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	SettleTimeout     time.Duration `yaml:"settle_timeout"`
	PollInterval      time.Duration `yaml:"poll_interval"`
	// NavigationsPerSecond paces page loads; 0 disables pacing.
	NavigationsPerSecond float64 `yaml:"navigations_per_second"`
}

// SiteConfig holds settings specific to sgcarmart.
type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
	// ListingPath is appended to BaseURL; %d is replaced by the page number.
	ListingPath string `yaml:"listing_path"`
}

// OutputConfig says where snapshots are written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	CSVPrefix string `yaml:"csv_prefix"`
	Database  string `yaml:"database"` // empty disables the SQLite snapshot
}

// Config is the complete structure for the config.yml file.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Site    SiteConfig    `yaml:"sgcarmart"`
	Output  OutputConfig  `yaml:"output"`
	Server  struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// Default is the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		Scraper: ScraperConfig{
			Engine:            "rod",
			Headless:          true,
			StartPage:         1,
			NumPages:          10,
			NavigationTimeout: 30 * time.Second,
			SettleTimeout:     10 * time.Second,
			PollInterval:      250 * time.Millisecond,
		},
		Site: SiteConfig{
			BaseURL:     "https://www.sgcarmart.com",
			ListingPath: "/used_cars/listing.php?PAGE=%d",
		},
		Output: OutputConfig{
			Dir:       ".",
			CSVPrefix: "sgcarmart_data",
		},
	}
	cfg.Server.Port = "8080"
	return cfg
}

// LoadConfig reads a YAML config file on top of Default. A missing file is
// not an error.
func LoadConfig(filepath string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the crawler cannot run with.
func (c *Config) Validate() error {
	switch c.Scraper.Engine {
	case "rod", "chromedp", "http":
	default:
		return fmt.Errorf("unknown scraper.engine %q", c.Scraper.Engine)
	}
	if c.Scraper.StartPage < 1 {
		return fmt.Errorf("scraper.start_page must be positive, got %d", c.Scraper.StartPage)
	}
	if c.Scraper.NumPages < 0 {
		return fmt.Errorf("scraper.num_pages must not be negative, got %d", c.Scraper.NumPages)
	}
	if c.Site.BaseURL == "" || c.Site.ListingPath == "" {
		return errors.New("sgcarmart.base_url and sgcarmart.listing_path are required")
	}
	return nil
}
