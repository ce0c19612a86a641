package hashstore

import (
	"context"
	"time"
)

// Entry is one recorded ingestion.
type Entry struct {
	Hash      string
	Filename  string
	CreatedAt time.Time
}

// Store remembers which document contents have already been ingested.
// The hash is the dedup key; filenames are kept only for display.
// Entries are append-only.
type Store interface {
	Has(ctx context.Context, hash string) (bool, error)
	Record(ctx context.Context, hash, filename string) error
	List(ctx context.Context) ([]Entry, error)
}
