package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/anilkoundinya7/E-Commerce/models"
)

const (
	productCachePrefix     = "product:detail:"
	productListCachePrefix = "products:v:"
	cacheVersionKey        = "products:version"
)

// CacheManager handles Redis caching for catalog reads. List entries are
// keyed by a version counter; bumping the version invalidates every cached
// list at once. A nil CacheManager is a no-op, so callers never nil-check.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewCacheManager(client *redis.Client, ttl time.Duration, log *zap.Logger) *CacheManager {
	return &CacheManager{redis: client, ttl: ttl, log: log}
}

// GetProduct retrieves a cached product, reporting whether it was found.
func (cm *CacheManager) GetProduct(ctx context.Context, idHex string) (*models.Product, bool) {
	if cm == nil {
		return nil, false
	}
	data, err := cm.redis.Get(ctx, productCachePrefix+idHex).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		cm.log.Warn("failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a single product in the background.
func (cm *CacheManager) SetProductAsync(idHex string, product *models.Product) {
	if cm == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(product)
		if err != nil {
			cm.log.Warn("failed to marshal product for cache", zap.Error(err), zap.String("product_id", idHex))
			return
		}
		if err := cm.redis.Set(bgCtx, productCachePrefix+idHex, data, cm.ttl).Err(); err != nil {
			cm.log.Warn("failed to cache product", zap.Error(err), zap.String("product_id", idHex))
		}
	}()
}

// GetProductList retrieves the cached product list for the current version.
func (cm *CacheManager) GetProductList(ctx context.Context) ([]models.Product, bool) {
	if cm == nil {
		return nil, false
	}
	version, err := cm.getVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	data, err := cm.redis.Get(ctx, cm.listKey(version)).Result()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		cm.log.Warn("failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProductListAsync caches the product list in the background.
func (cm *CacheManager) SetProductListAsync(products []models.Product) {
	if cm == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getVersion(bgCtx)
		if err != nil {
			return
		}
		if version == 0 {
			version, err = cm.redis.Incr(bgCtx, cacheVersionKey).Result()
			if err != nil {
				return
			}
		}

		data, err := json.Marshal(products)
		if err != nil {
			return
		}
		if err := cm.redis.Set(bgCtx, cm.listKey(version), data, cm.ttl).Err(); err != nil {
			cm.log.Warn("failed to cache product list", zap.Error(err))
		}
	}()
}

// InvalidateProduct drops one cached product.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, idHex string) {
	if cm == nil {
		return
	}
	if err := cm.redis.Del(ctx, productCachePrefix+idHex).Err(); err != nil {
		cm.log.Warn("failed to invalidate cached product", zap.Error(err), zap.String("product_id", idHex))
	}
}

// InvalidateLists bumps the version counter, orphaning every cached list.
func (cm *CacheManager) InvalidateLists(ctx context.Context) {
	if cm == nil {
		return
	}
	if err := cm.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		cm.log.Warn("failed to bump product cache version", zap.Error(err))
	}
}

func (cm *CacheManager) getVersion(ctx context.Context) (int64, error) {
	version, err := cm.redis.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return version, err
}

func (cm *CacheManager) listKey(version int64) string {
	return fmt.Sprintf("%s%d", productListCachePrefix, version)
}
