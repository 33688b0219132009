package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/stretchr/testify/mock"

	"price-advisor/internal/models"
	"price-advisor/internal/repositories"
)

// ============================================================================
// testify mocks
// ============================================================================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FetchAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	args := m.Called(ctx, query, limit)
	if p := args.Get(0); p != nil {
		return p.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProductRepository) Close() {
	m.Called()
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) RebuildAndSearch(ctx context.Context, query string, topK int) []repositories.SearchResult {
	args := m.Called(ctx, query, topK)
	if r := args.Get(0); r != nil {
		return r.([]repositories.SearchResult)
	}
	return nil
}

// ============================================================================
// deterministic in-memory fakes for pipeline tests
// ============================================================================

// fakeEmbedder maps any text containing a registered substring to a fixed
// vector, so tests can pin exact similarity orderings
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: make(map[string][]float32)}
}

func (f *fakeEmbedder) vectorFor(text string) []float32 {
	for sub, v := range f.vectors {
		if strings.Contains(text, sub) {
			return v
		}
	}
	return []float32{1, 0, 0}
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vectorFor(t)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectorFor(text), nil
}

// memoryVectorRepository is a real cosine-ranked in-memory implementation of
// repositories.VectorRepository
type memoryVectorRepository struct {
	docs       []models.ProductDocument
	embeddings [][]float32
	resetErr   error
	addErr     error
	queryErr   error
	resetCalls int
}

func (m *memoryVectorRepository) Reset(context.Context) error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resetCalls++
	m.docs = nil
	m.embeddings = nil
	return nil
}

func (m *memoryVectorRepository) AddDocuments(_ context.Context, docs []models.ProductDocument, embeddings [][]float32) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.docs = append(m.docs, docs...)
	m.embeddings = append(m.embeddings, embeddings...)
	return nil
}

func (m *memoryVectorRepository) QueryTexts(_ context.Context, embedding []float32, topK int) ([]repositories.SearchResult, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}

	results := make([]repositories.SearchResult, len(m.docs))
	for i, doc := range m.docs {
		score := cosineSimilarity(embedding, m.embeddings[i])
		results[i] = repositories.SearchResult{
			ID:       doc.ID,
			Text:     doc.Text,
			Score:    score,
			Distance: 1 - score,
			Metadata: doc.Metadata,
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

func (m *memoryVectorRepository) Count(context.Context) (int, error) {
	return len(m.docs), nil
}

func (m *memoryVectorRepository) Ping(context.Context) error { return nil }
func (m *memoryVectorRepository) Close() error               { return nil }

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
