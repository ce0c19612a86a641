package embedding

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"pdf-qa/internal/config"
	"pdf-qa/internal/models"
)

// Querier is the subset of the langchaingo embedder the pipeline needs.
// Ingestion and retrieval must go through the same Querier so document and
// question vectors live in the same embedding space.
type Querier interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// NewEmbedder builds an embedder against an OpenAI-compatible endpoint.
func NewEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithModel(cfg.Model),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}

// EmbedChunks embeds every chunk of a document and attaches source metadata.
func EmbedChunks(ctx context.Context, embedder Querier, filename string, chunks []models.Chunk) ([]models.ChunkEmbedding, error) {
	var chunkEmbeddings []models.ChunkEmbedding
	for _, chunk := range chunks {
		vec, err := embedder.EmbedQuery(ctx, chunk.Content)
		if err != nil {
			return nil, err
		}
		chunkEmbeddings = append(chunkEmbeddings, models.ChunkEmbedding{
			Content:        chunk.Content,
			Embedding:      vec,
			SourceFilename: filename,
			ChunkID:        chunk.ChunkID,
		})
	}
	return chunkEmbeddings, nil
}
