package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChromaClient wraps HTTP calls to the ChromaDB v2 API. The official Go
// client has v1/v2 compatibility issues, so collection and document
// operations go through the REST API directly.
type ChromaClient struct {
	baseURL    string
	serverURL  string
	httpClient *http.Client
}

// ChromaConfig holds configuration for a ChromaDB connection
type ChromaConfig struct {
	Host     string
	Port     int
	Tenant   string // default: "default_tenant"
	Database string // default: "default_database"
	Timeout  time.Duration
}

// ChromaCollection represents a ChromaDB collection
type ChromaCollection struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ChromaQueryResponse is the response shape of a nearest-neighbor query.
// The outer dimension is per query embedding, the inner is per result,
// ordered most-similar first.
type ChromaQueryResponse struct {
	IDs       [][]string                 `json:"ids"`
	Documents [][]string                 `json:"documents"`
	Metadatas [][]map[string]interface{} `json:"metadatas"`
	Distances [][]float32                `json:"distances"`
}

// NewChromaClient creates a ChromaDB client against the v2 API
func NewChromaClient(config ChromaConfig) *ChromaClient {
	if config.Tenant == "" {
		config.Tenant = "default_tenant"
	}
	if config.Database == "" {
		config.Database = "default_database"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	serverURL := fmt.Sprintf("http://%s:%d", config.Host, config.Port)

	return &ChromaClient{
		baseURL: fmt.Sprintf("%s/api/v2/tenants/%s/databases/%s",
			serverURL, config.Tenant, config.Database),
		serverURL:  serverURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// do sends one request and decodes the JSON response into out (when out is
// non-nil). Non-2xx statuses are returned as errors carrying the body.
func (c *ChromaClient) do(ctx context.Context, method, url string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chromadb returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Heartbeat checks if ChromaDB is alive
func (c *ChromaClient) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.serverURL+"/api/v2/heartbeat", nil, nil)
}

// CreateCollection creates a collection. When no metadata is given the
// collection defaults to cosine similarity space.
func (c *ChromaClient) CreateCollection(ctx context.Context, name string, metadata map[string]interface{}) (*ChromaCollection, error) {
	if metadata == nil {
		metadata = map[string]interface{}{"hnsw:space": "cosine"}
	}

	payload := map[string]interface{}{
		"name":     name,
		"metadata": metadata,
	}

	var collection ChromaCollection
	url := fmt.Sprintf("%s/collections", c.baseURL)
	if err := c.do(ctx, http.MethodPost, url, payload, &collection); err != nil {
		return nil, fmt.Errorf("create collection %s: %w", name, err)
	}
	return &collection, nil
}

// GetCollection retrieves a collection by name
func (c *ChromaClient) GetCollection(ctx context.Context, name string) (*ChromaCollection, error) {
	var collection ChromaCollection
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, name)
	if err := c.do(ctx, http.MethodGet, url, nil, &collection); err != nil {
		return nil, fmt.Errorf("get collection %s: %w", name, err)
	}
	return &collection, nil
}

// DeleteCollection deletes a collection. Deleting a collection that does
// not exist is not an error.
func (c *ChromaClient) DeleteCollection(ctx context.Context, name string) error {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, name)
	err := c.do(ctx, http.MethodDelete, url, nil, nil)
	if err != nil && strings.Contains(err.Error(), "status 404") {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	return nil
}

// CountCollection returns the number of documents in a collection
func (c *ChromaClient) CountCollection(ctx context.Context, name string) (int, error) {
	collection, err := c.GetCollection(ctx, name)
	if err != nil {
		return 0, err
	}

	var count int
	url := fmt.Sprintf("%s/collections/%s/count", c.baseURL, collection.ID)
	if err := c.do(ctx, http.MethodGet, url, nil, &count); err != nil {
		return 0, fmt.Errorf("count collection %s: %w", name, err)
	}
	return count, nil
}

// AddDocuments bulk-inserts (id, document, embedding, metadata) tuples into
// a collection
func (c *ChromaClient) AddDocuments(ctx context.Context, collectionName string, ids []string, documents []string, embeddings [][]float32, metadatas []map[string]interface{}) error {
	collection, err := c.GetCollection(ctx, collectionName)
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"ids":        ids,
		"documents":  documents,
		"embeddings": embeddings,
	}
	if metadatas != nil {
		payload["metadatas"] = metadatas
	}

	url := fmt.Sprintf("%s/collections/%s/add", c.baseURL, collection.ID)
	if err := c.do(ctx, http.MethodPost, url, payload, nil); err != nil {
		return fmt.Errorf("add %d documents to %s: %w", len(ids), collectionName, err)
	}
	return nil
}

// Query returns the nResults nearest neighbors for each query embedding,
// most-similar first
func (c *ChromaClient) Query(ctx context.Context, collectionName string, queryEmbeddings [][]float32, nResults int) (*ChromaQueryResponse, error) {
	collection, err := c.GetCollection(ctx, collectionName)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"query_embeddings": queryEmbeddings,
		"n_results":        nResults,
		"include":          []string{"documents", "metadatas", "distances"},
	}

	var queryResp ChromaQueryResponse
	url := fmt.Sprintf("%s/collections/%s/query", c.baseURL, collection.ID)
	if err := c.do(ctx, http.MethodPost, url, payload, &queryResp); err != nil {
		return nil, fmt.Errorf("query %s: %w", collectionName, err)
	}
	return &queryResp, nil
}

// Close closes idle HTTP connections
func (c *ChromaClient) Close() {
	c.httpClient.CloseIdleConnections()
}
