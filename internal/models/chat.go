package models

// ChatRequest is the incoming advisor chat request
type ChatRequest struct {
	Message string `json:"message"` // The user's free-text question
}

// ChatResponse is the advisor's reply. Every failure inside the pipeline
// degrades to a user-readable string here, never to an error status.
type ChatResponse struct {
	Response string `json:"response"`
}

// SimilarSearchRequest is a direct similarity-search request against the
// product index, bypassing generation
type SimilarSearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"` // default 5
}

// SimilarProduct is one ranked hit from a similarity search
type SimilarProduct struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Score    float32                `json:"score"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SimilarSearchResponse is the ranked result set for a similarity search
type SimilarSearchResponse struct {
	Results      []SimilarProduct `json:"results"`
	Query        string           `json:"query"`
	TotalResults int              `json:"total_results"`
}

// BasicResponse is a generic message/status envelope used by the health and
// error paths
type BasicResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"` // "success" or "error"
}
