package export

import (
	"CarmartScraper/internal/crawler"
	"CarmartScraper/internal/models"
	"context"
)

// MultiSink saves to several sinks in order and stops at the first failure.
type MultiSink []crawler.Sink

func (m MultiSink) Save(ctx context.Context, run models.Run, records []models.CarRecord) error {
	for _, s := range m {
		if err := s.Save(ctx, run, records); err != nil {
			return err
		}
	}
	return nil
}
