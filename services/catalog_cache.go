package services

import (
	"context"
	"encoding/json"
	"time"
	"topup-store/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	productCacheKeyPrefix = "product:detail:"
	productListCacheKey   = "products:all"
)

// CatalogCache is a Redis read-through cache for the product catalog. A nil
// cache (or one without a client) behaves as a permanent miss, so the
// storefront keeps working when Redis is down or not configured.
type CatalogCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{redis: client, ttl: ttl, logger: logger}
}

func (c *CatalogCache) enabled() bool {
	return c != nil && c.redis != nil
}

// GetProducts retrieves the cached catalog listing.
func (c *CatalogCache) GetProducts(ctx context.Context) ([]models.Product, bool) {
	if !c.enabled() {
		return nil, false
	}

	cached, err := c.redis.Get(ctx, productListCacheKey).Result()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(cached), &products); err != nil {
		c.logger.Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProducts caches the catalog listing.
func (c *CatalogCache) SetProducts(ctx context.Context, products []models.Product) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("Failed to marshal product list for cache", zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, productListCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache product list", zap.Error(err))
	}
}

// GetProduct retrieves a cached product document.
func (c *CatalogCache) GetProduct(ctx context.Context, id string) (*models.Product, bool) {
	if !c.enabled() {
		return nil, false
	}

	cached, err := c.redis.Get(ctx, productCacheKeyPrefix+id).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cached), &product); err != nil {
		c.logger.Warn("Failed to unmarshal cached product", zap.Error(err), zap.String("product_id", id))
		return nil, false
	}
	return &product, true
}

// SetProduct caches a single product document.
func (c *CatalogCache) SetProduct(ctx context.Context, product *models.Product) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("Failed to marshal product for cache", zap.Error(err), zap.String("product_id", product.ID))
		return
	}
	if err := c.redis.Set(ctx, productCacheKeyPrefix+product.ID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache product", zap.Error(err), zap.String("product_id", product.ID))
	}
}

// InvalidateProduct drops both the listing and one product's detail entry.
// Called after every admin catalog mutation.
func (c *CatalogCache) InvalidateProduct(ctx context.Context, id string) {
	if !c.enabled() {
		return
	}

	if err := c.redis.Del(ctx, productListCacheKey, productCacheKeyPrefix+id).Err(); err != nil {
		c.logger.Warn("Failed to invalidate catalog cache", zap.Error(err), zap.String("product_id", id))
	}
}
