package repositories

import (
	"context"
	"fmt"

	"price-advisor/internal/db"
	"price-advisor/internal/models"
)

// ChromaVectorRepository implements VectorRepository on one ChromaDB
// collection. The collection is ephemeral: Reset destroys and recreates it,
// so only the latest rebuild's documents are ever present.
type ChromaVectorRepository struct {
	client     *db.ChromaClient
	collection string
}

// NewChromaVectorRepository creates a ChromaDB-backed vector repository
// bound to the named collection
func NewChromaVectorRepository(client *db.ChromaClient, collection string) *ChromaVectorRepository {
	if collection == "" {
		collection = "price_advisor_products"
	}
	return &ChromaVectorRepository{
		client:     client,
		collection: collection,
	}
}

// Reset drops the collection and recreates it empty in cosine space
func (r *ChromaVectorRepository) Reset(ctx context.Context) error {
	if err := r.client.DeleteCollection(ctx, r.collection); err != nil {
		return NewVectorRepositoryError("reset", err, "failed to drop collection "+r.collection)
	}

	_, err := r.client.CreateCollection(ctx, r.collection, map[string]interface{}{
		"hnsw:space": "cosine",
	})
	if err != nil {
		return NewVectorRepositoryError("reset", err, "failed to recreate collection "+r.collection)
	}
	return nil
}

// AddDocuments bulk-inserts embedded product documents
func (r *ChromaVectorRepository) AddDocuments(ctx context.Context, docs []models.ProductDocument, embeddings [][]float32) error {
	if len(docs) == 0 {
		return nil
	}
	if len(docs) != len(embeddings) {
		return NewVectorRepositoryError("add_documents", nil,
			fmt.Sprintf("document/embedding count mismatch: %d vs %d", len(docs), len(embeddings)))
	}

	ids := make([]string, len(docs))
	texts := make([]string, len(docs))
	metadatas := make([]map[string]interface{}, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		texts[i] = doc.Text
		metadatas[i] = doc.Metadata
	}

	if err := r.client.AddDocuments(ctx, r.collection, ids, texts, embeddings, metadatas); err != nil {
		return NewVectorRepositoryError("add_documents", err,
			fmt.Sprintf("failed to store %d documents", len(docs)))
	}
	return nil
}

// QueryTexts returns up to topK nearest documents, most-similar first
func (r *ChromaVectorRepository) QueryTexts(ctx context.Context, embedding []float32, topK int) ([]SearchResult, error) {
	resp, err := r.client.Query(ctx, r.collection, [][]float32{embedding}, topK)
	if err != nil {
		return nil, NewVectorRepositoryError("query", err, "")
	}

	results := make([]SearchResult, 0, topK)
	if len(resp.IDs) == 0 {
		return results, nil
	}

	for i := range resp.IDs[0] {
		result := SearchResult{ID: resp.IDs[0][i]}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) {
			result.Text = resp.Documents[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			result.Metadata = resp.Metadatas[0][i]
		}
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			result.Distance = resp.Distances[0][i]
			result.Score = 1.0 - result.Distance
		}
		results = append(results, result)
	}
	return results, nil
}

// Count returns the number of indexed documents
func (r *ChromaVectorRepository) Count(ctx context.Context) (int, error) {
	count, err := r.client.CountCollection(ctx, r.collection)
	if err != nil {
		return 0, NewVectorRepositoryError("count", err, "")
	}
	return count, nil
}

// Ping checks if ChromaDB is alive
func (r *ChromaVectorRepository) Ping(ctx context.Context) error {
	if err := r.client.Heartbeat(ctx); err != nil {
		return NewVectorRepositoryError("ping", err, "chromadb heartbeat failed")
	}
	return nil
}

// Close closes the ChromaDB client
func (r *ChromaVectorRepository) Close() error {
	r.client.Close()
	return nil
}
