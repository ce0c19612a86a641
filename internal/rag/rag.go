package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"

	"pdf-qa/internal/config"
	"pdf-qa/internal/embedding"
	"pdf-qa/internal/index"
	"pdf-qa/internal/llm"
	"pdf-qa/internal/models"
)

// Index is what the answering and ingestion flows need from the vector
// index. *index.VectorIndex satisfies it; tests substitute stubs.
type Index interface {
	Upsert(ctx context.Context, fileHash string, chunkEmbeddings []models.ChunkEmbedding) error
	Search(ctx context.Context, queryEmbedding []float32, topK int) ([]index.Result, error)
	Count() int
}

// GenerateFunc produces an answer from assembled chat messages.
type GenerateFunc func(ctx context.Context, messages []llms.MessageContent) (string, error)

// RAG answers questions by retrieving similar chunks and forwarding them
// as context to the language model.
type RAG struct {
	index    Index
	embedder embedding.Querier
	generate GenerateFunc
	cfg      *config.Config
}

// NewRAG wires the retrieval flow. A nil generate falls back to the
// configured chat endpoint.
func NewRAG(idx Index, embedder embedding.Querier, generate GenerateFunc, cfg *config.Config) *RAG {
	if generate == nil {
		generate = func(ctx context.Context, messages []llms.MessageContent) (string, error) {
			return llm.Generate(ctx, &cfg.LLM, messages)
		}
	}
	return &RAG{index: idx, embedder: embedder, generate: generate, cfg: cfg}
}

// Answer embeds the question, retrieves the top-K most similar chunks,
// and asks the model with the retrieved context plus bounded conversation
// history. With an empty index it answers directly without a model call.
func (r *RAG) Answer(ctx context.Context, question string, history []models.Exchange) (*models.Answer, error) {
	if r.index.Count() == 0 {
		return &models.Answer{Content: models.NoDocumentsAnswer}, nil
	}

	queryEmbedding, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	results, err := r.index.Search(ctx, queryEmbedding, r.cfg.RAG.TopK)
	if err != nil {
		return nil, fmt.Errorf("searching vector index: %w", err)
	}

	contextText, sources := buildContext(results, r.cfg.RAG.MaxContextChars)
	prompt := fmt.Sprintf(models.AnswerPromptTemplate, contextText, question)
	messages := buildMessages(prompt, history, r.cfg.RAG.HistoryLimit)

	answer, err := r.generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	tokens := EstimateTokens(prompt) + EstimateTokens(answer)
	log.Debug().Int("retrieved", len(results)).Int("tokens_estimated", tokens).Msg("Answered question")

	return &models.Answer{
		Content:    answer,
		Sources:    sources,
		TokensUsed: tokens,
	}, nil
}

// buildContext concatenates retrieved chunk texts, separated by blank
// lines, into at most maxChars, and collects the distinct source filenames
// in rank order. The separator counts against the budget.
func buildContext(results []index.Result, maxChars int) (string, []string) {
	var b strings.Builder
	var sources []string
	seen := make(map[string]bool)
	for _, res := range results {
		if res.SourceFilename != "" && !seen[res.SourceFilename] {
			seen[res.SourceFilename] = true
			sources = append(sources, res.SourceFilename)
		}
		if b.Len() >= maxChars {
			continue
		}
		text := res.Content
		if b.Len() > 0 {
			text = "\n\n" + text
		}
		if remaining := maxChars - b.Len(); len(text) > remaining {
			text = text[:remaining]
		}
		b.WriteString(text)
	}
	return b.String(), sources
}

func buildMessages(prompt string, history []models.Exchange, historyLimit int) []llms.MessageContent {
	messages := []llms.MessageContent{{
		Role:  llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextContent{Text: models.SystemPrompt}},
	}}

	if historyLimit > 0 && len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	for _, ex := range history {
		messages = append(messages,
			llms.MessageContent{
				Role:  llms.ChatMessageTypeHuman,
				Parts: []llms.ContentPart{llms.TextContent{Text: ex.Question}},
			},
			llms.MessageContent{
				Role:  llms.ChatMessageTypeAI,
				Parts: []llms.ContentPart{llms.TextContent{Text: ex.Answer}},
			},
		)
	}

	return append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
	})
}

// EstimateTokens approximates the token count of a text as one token per
// four characters, rounded up. It is an estimate for display, not billing.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}
