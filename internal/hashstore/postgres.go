package hashstore

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// DocumentHash is the bun model backing the Postgres store.
type DocumentHash struct {
	bun.BaseModel `bun:"table:document_hashes,alias:dh"`
	Hash          string    `bun:"hash,pk"`
	Filename      string    `bun:"filename,notnull"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// PGStore records ingestion hashes in Postgres so several deployments can
// share one history. Same append-only contract as FileStore.
type PGStore struct {
	db *bun.DB
}

func NewPGStore(dsn string, debug bool) *PGStore {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &PGStore{db: db}
}

// Init creates the document_hashes table if needed.
func (s *PGStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*DocumentHash)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *PGStore) Has(ctx context.Context, hash string) (bool, error) {
	return s.db.NewSelect().
		Model((*DocumentHash)(nil)).
		Where("hash = ?", hash).
		Exists(ctx)
}

func (s *PGStore) Record(ctx context.Context, hash, filename string) error {
	rec := &DocumentHash{Hash: hash, Filename: filename}
	_, err := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (hash) DO NOTHING").
		Exec(ctx)
	return err
}

func (s *PGStore) List(ctx context.Context) ([]Entry, error) {
	var recs []DocumentHash
	err := s.db.NewSelect().
		Model(&recs).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(recs))
	for i, r := range recs {
		entries[i] = Entry{Hash: r.Hash, Filename: r.Filename, CreatedAt: r.CreatedAt}
	}
	return entries, nil
}

func (s *PGStore) Close() error {
	return s.db.Close()
}
