package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"pdf-qa/internal/config"
)

// Generate sends a chat completion request to an OpenAI-compatible endpoint
// and returns the first choice. Errors propagate as-is; there is no retry.
func Generate(ctx context.Context, cfg *config.LLMConfig, messages []llms.MessageContent) (string, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return "", err
	}

	res, err := llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return res.Choices[0].Content, nil
}
