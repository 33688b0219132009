package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"price-advisor/internal/models"
	"price-advisor/internal/services"
)

// ProductHandler exposes the product store's listing and substring search
type ProductHandler struct {
	products *services.ProductService
	logger   *zap.SugaredLogger
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *services.ProductService, logger *zap.SugaredLogger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

// HandleList returns the store's products
// @Summary List products
// @Description Return products from the store, up to the configured fetch bound
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products := h.products.List(r.Context())
	writeJSON(w, http.StatusOK, products)
}

// HandleSearch searches products by name or description
// @Summary Search products
// @Description Case-insensitive substring search on title, falling back to description, then to keywords extracted from the query
// @Tags products
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results (default 10)"
// @Success 200 {array} models.Product
// @Failure 400 {object} models.BasicResponse
// @Router /products/search [get]
func (h *ProductHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, models.BasicResponse{
			Message: "Query parameter 'q' is required",
			Status:  "error",
		})
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	products := h.products.Search(r.Context(), query, limit)
	writeJSON(w, http.StatusOK, products)
}
