package repositories

import (
	"context"

	"price-advisor/internal/models"
)

// VectorRepository defines the operations this system needs from a vector
// database: destroy-and-recreate the collection, bulk-insert embedded
// documents, and top-k nearest-neighbor search by cosine similarity.
type VectorRepository interface {
	// Reset drops the collection if it exists and recreates it empty in
	// cosine similarity space
	Reset(ctx context.Context) error

	// AddDocuments bulk-inserts documents with their precomputed
	// embeddings; embeddings[i] belongs to docs[i]
	AddDocuments(ctx context.Context, docs []models.ProductDocument, embeddings [][]float32) error

	// QueryTexts returns up to topK stored documents nearest to the query
	// embedding, most-similar first. Fewer than topK results are returned
	// when the collection holds fewer documents.
	QueryTexts(ctx context.Context, embedding []float32, topK int) ([]SearchResult, error)

	// Count returns the number of documents currently indexed
	Count(ctx context.Context) (int, error)

	// Ping checks if the vector database is alive
	Ping(ctx context.Context) error

	// Close releases the underlying client
	Close() error
}

// SearchResult is a single vector search hit
type SearchResult struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Score    float32                `json:"score"` // 1 - cosine distance, higher is better
	Distance float32                `json:"distance"`
	Metadata map[string]interface{} `json:"metadata"`
}

// VectorRepositoryError represents a vector database failure. Like store
// errors, these are recoverable: the index degrades to empty and the turn
// resolves to a "no results" answer.
type VectorRepositoryError struct {
	Operation string
	Err       error
	Message   string
}

func (e *VectorRepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Operation + ": " + e.Err.Error()
	}
	return e.Operation + ": unknown error"
}

func (e *VectorRepositoryError) Unwrap() error {
	return e.Err
}

// NewVectorRepositoryError creates a new vector repository error
func NewVectorRepositoryError(operation string, err error, message string) *VectorRepositoryError {
	return &VectorRepositoryError{
		Operation: operation,
		Err:       err,
		Message:   message,
	}
}
