package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1, cfg.Scraper.StartPage)
	assert.Equal(t, 10, cfg.Scraper.NumPages)
	assert.Equal(t, "sgcarmart_data", cfg.Output.CSVPrefix)
	// only the CSV is written unless a database is configured
	assert.Empty(t, cfg.Output.Database)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
scraper:
  engine: http
  num_pages: 3
  settle_timeout: 2s
sgcarmart:
  base_url: http://localhost:9000
output:
  database: snapshots.db
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.Scraper.Engine)
	assert.Equal(t, 3, cfg.Scraper.NumPages)
	assert.Equal(t, 2*time.Second, cfg.Scraper.SettleTimeout)
	assert.Equal(t, "http://localhost:9000", cfg.Site.BaseURL)
	assert.Equal(t, "snapshots.db", cfg.Output.Database)

	// untouched keys keep their defaults
	assert.Equal(t, 1, cfg.Scraper.StartPage)
	assert.True(t, cfg.Scraper.Headless)
	assert.Equal(t, "/used_cars/listing.php?PAGE=%d", cfg.Site.ListingPath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yml  string
	}{
		{"unknown engine", "scraper:\n  engine: selenium\n"},
		{"zero start page", "scraper:\n  start_page: 0\n"},
		{"bad yaml", "scraper: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, []byte(tc.yml), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}
