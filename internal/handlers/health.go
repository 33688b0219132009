package handlers

import (
	"context"
	"fmt"
	"net/http"

	"price-advisor/internal/models"
)

// HealthChecker verifies one external collaborator is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckHandler reports server liveness
// @Summary Health check
// @Description Returns success when the server is running
// @Tags general
// @Produce json
// @Success 200 {object} models.BasicResponse
// @Router /health [get]
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.BasicResponse{
		Message: "Server is healthy",
		Status:  "success",
	})
}

// HomeHandler returns a welcome message
// @Summary Home
// @Description Returns a welcome message for the API server
// @Tags general
// @Produce text/plain
// @Success 200 {string} string "Price Advisor backend is running!"
// @Router / [get]
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprintln(w, "Price Advisor backend is running!")
}

// NewLLMHealthHandler reports the generation backend's availability
// @Summary Check LLM health
// @Description Verify the hosted generation model is reachable with the configured credential
// @Tags general
// @Produce json
// @Success 200 {object} models.BasicResponse
// @Failure 503 {object} models.BasicResponse
// @Router /llm/health [get]
func NewLLMHealthHandler(llm HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := llm.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, models.BasicResponse{
				Message: "Generation model is not available: " + err.Error(),
				Status:  "error",
			})
			return
		}
		writeJSON(w, http.StatusOK, models.BasicResponse{
			Message: "Generation model is available",
			Status:  "success",
		})
	}
}
