package index

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"pdf-qa/internal/models"
)

// Result is one retrieved chunk ranked by similarity to the query vector.
type Result struct {
	Content        string
	SourceFilename string
	Similarity     float32
}

// VectorIndex wraps a persistent chromem-go collection. Vector records are
// owned entirely by the collection; chunks are never persisted elsewhere.
type VectorIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
}

const compress = false

func New(path, collectionName string) (*VectorIndex, error) {
	db, err := chromem.NewPersistentDB(path, compress)
	if err != nil {
		return nil, fmt.Errorf("opening vector database: %w", err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("opening collection %s: %w", collectionName, err)
	}
	return &VectorIndex{db: db, collection: collection}, nil
}

// Upsert adds embedded chunks under deterministic IDs derived from the
// document hash, so a re-ingested document overwrites its own records
// instead of duplicating them.
func (v *VectorIndex) Upsert(ctx context.Context, fileHash string, chunkEmbeddings []models.ChunkEmbedding) error {
	if len(chunkEmbeddings) == 0 {
		return nil
	}
	idPrefix := fileHash
	if len(idPrefix) > 12 {
		idPrefix = idPrefix[:12]
	}

	docs := make([]chromem.Document, 0, len(chunkEmbeddings))
	for _, ce := range chunkEmbeddings {
		docs = append(docs, chromem.Document{
			ID:      fmt.Sprintf("%s-%d", idPrefix, ce.ChunkID),
			Content: ce.Content,
			Metadata: map[string]string{
				"source_filename": ce.SourceFilename,
				"chunk_id":        strconv.Itoa(ce.ChunkID),
			},
			Embedding: ce.Embedding,
		})
	}
	if err := v.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding documents to vector index: %w", err)
	}
	return nil
}

// Search returns up to topK chunks nearest to the query embedding.
func (v *VectorIndex) Search(ctx context.Context, queryEmbedding []float32, topK int) ([]Result, error) {
	count := v.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	hits, err := v.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       topK,
	})
	if err != nil {
		return nil, fmt.Errorf("querying vector index: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result{
			Content:        hit.Content,
			SourceFilename: hit.Metadata["source_filename"],
			Similarity:     hit.Similarity,
		})
	}
	return results, nil
}

// Count reports how many chunks the collection holds.
func (v *VectorIndex) Count() int {
	return v.collection.Count()
}
