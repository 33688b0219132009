package repositories

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"price-advisor/internal/db"
	"price-advisor/internal/models"
)

const productCacheKey = "products:all"

// CachedProductRepository is a read-through cache in front of another
// ProductRepository. Only the bulk fetch is cached; substring searches
// always go to the store. A short TTL keeps the index rebuild close to the
// store's current contents, and any cache failure silently falls through
// to the source.
type CachedProductRepository struct {
	source ProductRepository
	cache  *db.RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewCachedProductRepository wraps source with a Redis-backed fetch cache
func NewCachedProductRepository(source ProductRepository, cache *db.RedisClient, ttl time.Duration, logger *zap.SugaredLogger) *CachedProductRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedProductRepository{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchAll returns the cached product set when fresh, otherwise delegates
// to the source and stores the result
func (r *CachedProductRepository) FetchAll(ctx context.Context) ([]models.Product, error) {
	if cached, err := r.cache.Get(ctx, productCacheKey); err == nil {
		var products []models.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			r.logger.Debugf("product cache hit: %d products", len(products))
			return products, nil
		}
		// Corrupt entry: drop it and fall through to the source
		_ = r.cache.Del(ctx, productCacheKey)
	} else if !db.IsCacheMiss(err) {
		r.logger.Warnf("product cache read failed: %v", err)
	}

	products, err := r.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		if err := r.cache.Set(ctx, productCacheKey, data, r.ttl); err != nil {
			r.logger.Warnf("product cache write failed: %v", err)
		}
	}

	return products, nil
}

// Search always hits the source store
func (r *CachedProductRepository) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	return r.source.Search(ctx, query, limit)
}

// Ping checks the source store
func (r *CachedProductRepository) Ping(ctx context.Context) error {
	return r.source.Ping(ctx)
}

// Close closes the source store; the shared Redis client is owned by the
// server, not this decorator
func (r *CachedProductRepository) Close() {
	r.source.Close()
}
