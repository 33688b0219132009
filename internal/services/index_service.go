package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"price-advisor/internal/models"
	"price-advisor/internal/repositories"
)

// Retriever rebuilds the product index from the store and answers a top-k
// similarity query against the fresh snapshot, as one atomic operation
type Retriever interface {
	RebuildAndSearch(ctx context.Context, query string, topK int) []repositories.SearchResult
}

// IndexService owns the vector index lifecycle. Every search is preceded by
// a full destructive rebuild from the product store; the mutex keeps a
// concurrent turn from querying a half-rebuilt collection.
//
// Failures never propagate: a store or embedding error leaves the index
// effectively empty and the search returns no results.
type IndexService struct {
	products repositories.ProductRepository
	vectors  repositories.VectorRepository
	embedder Embedder
	logger   *zap.SugaredLogger
	mu       sync.Mutex
}

// NewIndexService creates an index service over the given store, vector
// repository and embedder
func NewIndexService(
	products repositories.ProductRepository,
	vectors repositories.VectorRepository,
	embedder Embedder,
	logger *zap.SugaredLogger,
) *IndexService {
	return &IndexService{
		products: products,
		vectors:  vectors,
		embedder: embedder,
		logger:   logger,
	}
}

// RebuildAndSearch refreshes the index from the store and returns the topK
// documents nearest to the query, most-similar first. The result is empty
// when the store is empty or any external call fails.
func (s *IndexService) RebuildAndSearch(ctx context.Context, query string, topK int) []repositories.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := s.rebuild(ctx)
	if loaded == 0 {
		return nil
	}
	return s.search(ctx, query, topK)
}

// rebuild clears the collection and reloads it with the store's current
// contents, returning the number of documents indexed. Callers must hold
// s.mu.
func (s *IndexService) rebuild(ctx context.Context) int {
	products, err := s.products.FetchAll(ctx)
	if err != nil {
		s.logger.Errorf("failed to fetch products: %v", err)
		products = nil
	}
	s.logger.Infof("fetched %d products from store", len(products))

	if err := s.vectors.Reset(ctx); err != nil {
		s.logger.Errorf("failed to reset vector collection: %v", err)
		return 0
	}

	if len(products) == 0 {
		return 0
	}

	docs := make([]models.ProductDocument, len(products))
	texts := make([]string, len(products))
	for i, p := range products {
		docs[i] = BuildProductDocument(p)
		texts[i] = docs[i].Text
	}

	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		s.logger.Errorf("failed to embed %d documents: %v", len(texts), err)
		return 0
	}

	if err := s.vectors.AddDocuments(ctx, docs, embeddings); err != nil {
		s.logger.Errorf("failed to load documents into vector store: %v", err)
		return 0
	}

	s.logger.Infof("loaded %d products into vector index", len(docs))
	return len(docs)
}

// search embeds the query and asks the collection for its nearest
// neighbors. Callers must hold s.mu.
func (s *IndexService) search(ctx context.Context, query string, topK int) []repositories.SearchResult {
	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Errorf("failed to embed query: %v", err)
		return nil
	}

	results, err := s.vectors.QueryTexts(ctx, embedding, topK)
	if err != nil {
		s.logger.Errorf("vector query failed: %v", err)
		return nil
	}
	return results
}
