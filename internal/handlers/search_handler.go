package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"price-advisor/internal/models"
	"price-advisor/internal/services"
)

// SearchHandler handles direct similarity-search requests against the
// product index
type SearchHandler struct {
	index       services.Retriever
	defaultTopK int
	logger      *zap.SugaredLogger
}

// NewSearchHandler creates a new search handler. defaultTopK is used when
// the request leaves top_k unset.
func NewSearchHandler(index services.Retriever, defaultTopK int, logger *zap.SugaredLogger) *SearchHandler {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &SearchHandler{
		index:       index,
		defaultTopK: defaultTopK,
		logger:      logger,
	}
}

// HandleSimilarSearch returns the products most similar to a query
// @Summary Similarity search
// @Description Find the products semantically closest to a free-text query, ranked by cosine similarity
// @Tags search
// @Accept json
// @Produce json
// @Param request body models.SimilarSearchRequest true "Search request"
// @Success 200 {object} models.SimilarSearchResponse
// @Failure 400 {object} models.BasicResponse
// @Router /search/similar [post]
func (h *SearchHandler) HandleSimilarSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SimilarSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("invalid search request body: %v", err)
		writeJSON(w, http.StatusBadRequest, models.BasicResponse{
			Message: "Invalid request body: " + err.Error(),
			Status:  "error",
		})
		return
	}

	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, models.BasicResponse{
			Message: "Query is required",
			Status:  "error",
		})
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = h.defaultTopK
	}

	results := h.index.RebuildAndSearch(r.Context(), req.Query, topK)

	hits := make([]models.SimilarProduct, len(results))
	for i, res := range results {
		hits[i] = models.SimilarProduct{
			ID:       res.ID,
			Text:     res.Text,
			Score:    res.Score,
			Metadata: res.Metadata,
		}
	}

	writeJSON(w, http.StatusOK, models.SimilarSearchResponse{
		Results:      hits,
		Query:        req.Query,
		TotalResults: len(hits),
	})
}
