package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"price-advisor/internal/models"
)

// Advisor is the chat orchestrator as seen by the HTTP layer
type Advisor interface {
	Chat(ctx context.Context, message string) string
}

// ChatHandler handles advisor chat requests
type ChatHandler struct {
	advisor Advisor
	logger  *zap.SugaredLogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(advisor Advisor, logger *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{
		advisor: advisor,
		logger:  logger,
	}
}

// HandleChat runs one advisor turn
// @Summary Ask the price advisor
// @Description Submit a free-text question about products and pricing and receive a grounded answer
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat request"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} models.BasicResponse
// @Router /chat/advisor [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("invalid chat request body: %v", err)
		writeJSON(w, http.StatusBadRequest, models.BasicResponse{
			Message: "Invalid request body: " + err.Error(),
			Status:  "error",
		})
		return
	}

	// The advisor never fails: empty input, an empty store, and model
	// errors all resolve to user-readable text.
	response := h.advisor.Chat(r.Context(), req.Message)

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: response})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
