package export

import (
	"CarmartScraper/internal/models"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVSink writes one CSV file per run day, replacing it on every save.
type CSVSink struct {
	Dir    string
	Prefix string
}

// NewCSVSink creates a sink writing <dir>/<prefix>_<YYYYMMDD>.csv.
func NewCSVSink(dir, prefix string) *CSVSink {
	if dir == "" {
		dir = "."
	}
	if prefix == "" {
		prefix = "sgcarmart_data"
	}
	return &CSVSink{Dir: dir, Prefix: prefix}
}

// Path is the file a run's snapshot is written to.
func (s *CSVSink) Path(run models.Run) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s_%s.csv", s.Prefix, run.Key()))
}

// Save writes the header and every record to a temporary file and renames it
// over the run's file, so a reader never sees a half-written snapshot.
func (s *CSVSink) Save(ctx context.Context, run models.Run, records []models.CarRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	target := s.Path(run)
	tmp, err := os.CreateTemp(s.Dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(models.CarColumns); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write header: %w", err)
	}
	for i := range records {
		if err := w.Write(records[i].Row()); err != nil {
			tmp.Close()
			return fmt.Errorf("could not write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("could not flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("could not replace %s: %w", target, err)
	}
	return nil
}

// ReadCSV loads a snapshot written by CSVSink. Empty cells come back absent.
func ReadCSV(path string) ([]models.CarRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header", path)
	}

	header := rows[0]
	records := make([]models.CarRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var rec models.CarRecord
		for i, col := range header {
			if i >= len(row) {
				break
			}
			switch col {
			case models.ColURL:
				rec.URL = row[i]
			case models.ColScrapingDate:
				rec.ScrapingDate = row[i]
			default:
				if row[i] == "" {
					continue
				}
				if err := rec.Set(col, models.Text(row[i])); err != nil {
					return nil, fmt.Errorf("%s: %w", path, err)
				}
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
