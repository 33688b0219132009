package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"price-advisor/internal/handlers"
)

// Handlers collects every handler the router needs
type Handlers struct {
	Home      http.HandlerFunc
	Health    http.HandlerFunc
	LLMHealth http.HandlerFunc

	Chat     *handlers.ChatHandler
	Search   *handlers.SearchHandler
	Products *handlers.ProductHandler
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(router *mux.Router, h *Handlers) {
	router.HandleFunc("/", h.Home).Methods(http.MethodGet)
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/llm/health", h.LLMHealth).Methods(http.MethodGet)

	router.HandleFunc("/chat/advisor", h.Chat.HandleChat).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/search/similar", h.Search.HandleSimilarSearch).Methods(http.MethodPost, http.MethodOptions)

	router.HandleFunc("/products", h.Products.HandleList).Methods(http.MethodGet)
	router.HandleFunc("/products/search", h.Products.HandleSearch).Methods(http.MethodGet)
}
