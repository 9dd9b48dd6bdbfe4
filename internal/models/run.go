package models

import (
	"time"

	"github.com/google/uuid"
)

// Run identifies one crawl. Sinks name their output after it instead of
// reading the clock themselves.
type Run struct {
	ID        uuid.UUID
	StartedAt time.Time
}

// NewRun starts a run at the given time with a fresh ID.
func NewRun(startedAt time.Time) Run {
	return Run{ID: uuid.New(), StartedAt: startedAt}
}

// Key is the day key used in output file names (YYYYMMDD).
func (r Run) Key() string {
	return r.StartedAt.Format("20060102")
}
