package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// Generator produces text from a fully composed prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into fixed-length vectors for similarity search
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// GeminiConfig holds the hosted model configuration. The API key is always
// externally supplied, never a source literal.
type GeminiConfig struct {
	APIKey         string
	Model          string // generation model, default gemini-2.0-flash-lite
	EmbeddingModel string // default text-embedding-004
}

// GeminiService backs both generation and embedding with Google's hosted
// models through langchaingo
type GeminiService struct {
	llm    *googleai.GoogleAI
	logger *zap.SugaredLogger
}

// NewGeminiService creates a Gemini-backed generation and embedding service
func NewGeminiService(ctx context.Context, config GeminiConfig, logger *zap.SugaredLogger) (*GeminiService, error) {
	if config.Model == "" {
		config.Model = "gemini-2.0-flash-lite"
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = "text-embedding-004"
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(config.APIKey),
		googleai.WithDefaultModel(config.Model),
		googleai.WithDefaultEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	return &GeminiService{llm: llm, logger: logger}, nil
}

// Generate sends the prompt to the generation model and returns its text
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	return answer, nil
}

// EmbedDocuments embeds a batch of document texts
func (s *GeminiService) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings, err := s.llm.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	return embeddings, nil
}

// EmbedQuery embeds a single query string
func (s *GeminiService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := s.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding model returned no vectors")
	}
	return embeddings[0], nil
}

// HealthCheck verifies the hosted model is reachable with the configured
// credential. An embedding round-trip is the cheapest authenticated call.
func (s *GeminiService) HealthCheck(ctx context.Context) error {
	if _, err := s.llm.CreateEmbedding(ctx, []string{"ping"}); err != nil {
		return fmt.Errorf("gemini not reachable: %w", err)
	}
	return nil
}
