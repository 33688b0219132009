package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// chatTopK is how many products ground each answer
	chatTopK = 3

	emptyInputMessage = "Please ask me something about products and pricing!"
	noResultsMessage  = "I couldn't find any relevant products for your query. Please try rephrasing your question."
)

// ChatService orchestrates one advisor turn: validate input, rebuild the
// index from the store, retrieve the top products, compose the grounded
// prompt and generate the answer. Every failure along the way resolves to
// a user-readable string; nothing escapes as an error.
type ChatService struct {
	index     Retriever
	generator Generator
	logger    *zap.SugaredLogger
}

// NewChatService creates the chat orchestrator
func NewChatService(index Retriever, generator Generator, logger *zap.SugaredLogger) *ChatService {
	return &ChatService{
		index:     index,
		generator: generator,
		logger:    logger,
	}
}

// Chat runs one full turn and returns the advisor's reply. No state
// survives between calls; the index is rebuilt fresh so the answer always
// reflects the store's current contents.
func (s *ChatService) Chat(ctx context.Context, message string) string {
	if strings.TrimSpace(message) == "" {
		return emptyInputMessage
	}

	results := s.index.RebuildAndSearch(ctx, message, chatTopK)
	if len(results) == 0 {
		s.logger.Infof("no products retrieved for query: %q", message)
		return noResultsMessage
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}

	prompt := ComposePrompt(message, AssembleContext(texts))

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Errorf("generation failed: %v", err)
		return fmt.Sprintf("Sorry, I encountered an error: %v", err)
	}
	return answer
}
