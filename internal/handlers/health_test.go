package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-advisor/internal/models"
)

type stubHealthChecker struct {
	err error
}

func (s *stubHealthChecker) HealthCheck(context.Context) error { return s.err }

func TestHealthCheckHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	HealthCheckHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.BasicResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
}

func TestHomeHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	HomeHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Price Advisor backend is running!")
}

func TestHomeHandler_UnknownPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	HomeHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLLMHealthHandler(t *testing.T) {
	handler := NewLLMHealthHandler(&stubHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/llm/health", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLLMHealthHandler_Unavailable(t *testing.T) {
	handler := NewLLMHealthHandler(&stubHealthChecker{err: errors.New("invalid api key")})

	req := httptest.NewRequest(http.MethodGet, "/llm/health", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp models.BasicResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Message, "invalid api key")
}
