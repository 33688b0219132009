package services

import (
	"context"

	"go.uber.org/zap"

	"price-advisor/internal/models"
	"price-advisor/internal/repositories"
)

// maxSearchKeywords bounds how many extracted terms are tried against the
// store before giving up
const maxSearchKeywords = 5

// ProductService exposes the store's listing and substring search. Store
// failures degrade to empty results and a log line, matching the chat
// pipeline's error policy.
type ProductService struct {
	repo      repositories.ProductRepository
	extractor *QueryKeywordExtractor
	logger    *zap.SugaredLogger
}

// NewProductService creates a product service
func NewProductService(repo repositories.ProductRepository, logger *zap.SugaredLogger) *ProductService {
	return &ProductService{
		repo:      repo,
		extractor: NewQueryKeywordExtractor(),
		logger:    logger,
	}
}

// List returns the store's products up to the configured fetch bound
func (s *ProductService) List(ctx context.Context) []models.Product {
	products, err := s.repo.FetchAll(ctx)
	if err != nil {
		s.logger.Errorf("failed to list products: %v", err)
		return []models.Product{}
	}
	return products
}

// Search tries the raw query as a substring first, then falls back to its
// extracted keywords one at a time until something matches. Free-text
// questions rarely substring-match a title, so the keyword pass is what
// makes this endpoint usable with natural language.
func (s *ProductService) Search(ctx context.Context, query string, limit int) []models.Product {
	products, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		s.logger.Errorf("product search failed: %v", err)
		return []models.Product{}
	}
	if len(products) > 0 {
		return products
	}

	keywords, err := s.extractor.Extract(query, maxSearchKeywords)
	if err != nil {
		s.logger.Warnf("keyword extraction failed for %q: %v", query, err)
		return []models.Product{}
	}

	for _, keyword := range keywords {
		if keyword == query {
			continue
		}
		products, err = s.repo.Search(ctx, keyword, limit)
		if err != nil {
			s.logger.Errorf("product search failed for keyword %q: %v", keyword, err)
			return []models.Product{}
		}
		if len(products) > 0 {
			s.logger.Infof("query %q matched via keyword %q", query, keyword)
			return products
		}
	}
	return []models.Product{}
}
