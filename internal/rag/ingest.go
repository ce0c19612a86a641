package rag

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog/log"

	"pdf-qa/internal/config"
	"pdf-qa/internal/embedding"
	"pdf-qa/internal/hashstore"
	"pdf-qa/internal/parser"
	"pdf-qa/internal/splitter"
)

type IngestStatus string

const (
	StatusIngested IngestStatus = "ingested"
	StatusSkipped  IngestStatus = "skipped"
)

// IngestResult reports what happened to one uploaded document.
type IngestResult struct {
	Status   IngestStatus
	Filename string
	Hash     string
	Chunks   int
}

// Ingestor runs the upload pipeline: hash, dedup check, extract, chunk,
// embed, upsert, record.
type Ingestor struct {
	store    hashstore.Store
	index    Index
	embedder embedding.Querier
	cfg      *config.Config
}

func NewIngestor(store hashstore.Store, idx Index, embedder embedding.Querier, cfg *config.Config) *Ingestor {
	return &Ingestor{store: store, index: idx, embedder: embedder, cfg: cfg}
}

// Ingest processes one uploaded document held in memory. A document whose
// content hash is already recorded is skipped; content, not filename, is
// the dedup key. Extraction, embedding, or upsert failures abort the file;
// chunks already upserted are not rolled back. The hash is recorded only
// after a successful upsert so a failed ingestion can be retried.
func (i *Ingestor) Ingest(ctx context.Context, filename string, data []byte) (*IngestResult, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	seen, err := i.store.Has(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("checking hash store: %w", err)
	}
	if seen {
		log.Info().Str("filename", filename).Str("hash", hash[:12]).Msg("Document already ingested, skipping")
		return &IngestResult{Status: StatusSkipped, Filename: filename, Hash: hash}, nil
	}

	text, err := parser.Extract(filename, data)
	if err != nil {
		return nil, err
	}

	chunks := splitter.Chunks(text, i.cfg.RAG.ChunkSize, i.cfg.RAG.ChunkOverlap)
	if len(chunks) == 0 {
		return nil, parser.ErrNoText
	}

	chunkEmbeddings, err := embedding.EmbedChunks(ctx, i.embedder, filename, chunks)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}

	if err := i.index.Upsert(ctx, hash, chunkEmbeddings); err != nil {
		return nil, err
	}

	if err := i.store.Record(ctx, hash, filename); err != nil {
		// The document is in the index; a lost hash only means a future
		// duplicate check re-ingests it.
		log.Warn().Err(err).Str("filename", filename).Msg("Failed to record document hash")
	}

	log.Info().Str("filename", filename).Int("chunks", len(chunks)).Msg("Document ingested")
	return &IngestResult{Status: StatusIngested, Filename: filename, Hash: hash, Chunks: len(chunks)}, nil
}
