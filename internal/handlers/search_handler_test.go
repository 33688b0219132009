package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"price-advisor/internal/models"
	"price-advisor/internal/repositories"
)

type stubRetriever struct {
	lastQuery string
	lastTopK  int
	results   []repositories.SearchResult
}

func (s *stubRetriever) RebuildAndSearch(_ context.Context, query string, topK int) []repositories.SearchResult {
	s.lastQuery = query
	s.lastTopK = topK
	return s.results
}

func TestHandleSimilarSearch(t *testing.T) {
	retriever := &stubRetriever{results: []repositories.SearchResult{
		{ID: "1", Text: "Product Title: Desk Lamp", Score: 0.92, Metadata: map[string]interface{}{"title": "Desk Lamp"}},
		{ID: "2", Text: "Product Title: Floor Lamp", Score: 0.81},
	}}
	handler := NewSearchHandler(retriever, 5, zap.NewNop().Sugar())

	body := strings.NewReader(`{"query": "lamp", "top_k": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/search/similar", body)
	rec := httptest.NewRecorder()

	handler.HandleSimilarSearch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lamp", retriever.lastQuery)
	assert.Equal(t, 2, retriever.lastTopK)

	var resp models.SimilarSearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "lamp", resp.Query)
	assert.Equal(t, 2, resp.TotalResults)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "1", resp.Results[0].ID)
	assert.InDelta(t, 0.92, resp.Results[0].Score, 1e-6)
}

func TestHandleSimilarSearch_DefaultTopK(t *testing.T) {
	retriever := &stubRetriever{}
	handler := NewSearchHandler(retriever, 5, zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/search/similar", strings.NewReader(`{"query": "lamp"}`))
	rec := httptest.NewRecorder()

	handler.HandleSimilarSearch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, retriever.lastTopK)
}

func TestHandleSimilarSearch_MissingQuery(t *testing.T) {
	retriever := &stubRetriever{}
	handler := NewSearchHandler(retriever, 5, zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/search/similar", strings.NewReader(`{"top_k": 3}`))
	rec := httptest.NewRecorder()

	handler.HandleSimilarSearch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, retriever.lastQuery)
}

func TestHandleSimilarSearch_NoResults(t *testing.T) {
	retriever := &stubRetriever{}
	handler := NewSearchHandler(retriever, 5, zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/search/similar", strings.NewReader(`{"query": "spaceship"}`))
	rec := httptest.NewRecorder()

	handler.HandleSimilarSearch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.SimilarSearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 0, resp.TotalResults)
	assert.Empty(t, resp.Results)
}
