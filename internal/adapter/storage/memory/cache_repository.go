package memory

import (
	"context"
	"fmt"
	"time"

	"wallet-assets/internal/config"
	"wallet-assets/internal/domain/entity"
	domainRepo "wallet-assets/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

// Cache keys
const (
	purchasableAssetsKey = "purchasable_assets_v1"
	viewKeyPrefix        = "asset_view_v1_"
)

// CacheRepository implements domainRepo.CacheRepository using the go-cache in-memory library.
type CacheRepository struct {
	cache  *cache.Cache
	logger *zap.Logger
	cfg    config.CacheConfig
}

// NewCacheRepository creates a new in-memory cache repository instance.
func NewCacheRepository(cfg config.CacheConfig, logger *zap.Logger) *CacheRepository {
	defaultExpiration := cfg.GetDefaultExpiration()
	cleanupInterval := cfg.GetCleanupInterval()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for memory storage",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:  c,
		logger: logger.Named("MemoryCacheStorage"),
		cfg:    cfg,
	}
}

// GetPurchasableAssets retrieves the cached registry tokens, returning found status.
func (r *CacheRepository) GetPurchasableAssets(_ context.Context) ([]entity.Token, bool, error) {
	x, found := r.cache.Get(purchasableAssetsKey)
	if !found {
		r.logger.Debug("Memory cache miss", zap.String("key", purchasableAssetsKey))
		return nil, false, nil
	}
	tokens, ok := x.([]entity.Token)
	if !ok {
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", purchasableAssetsKey), zap.Any("type", fmt.Sprintf("%T", x)),
		)
		return nil, false, nil
	}
	r.logger.Debug("Memory cache hit", zap.String("key", purchasableAssetsKey))
	return append([]entity.Token(nil), tokens...), true, nil
}

// SetPurchasableAssets caches the registry tokens with a given TTL.
func (r *CacheRepository) SetPurchasableAssets(_ context.Context, tokens []entity.Token, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.cfg.GetDefaultExpiration()
	}
	r.cache.Set(purchasableAssetsKey, append([]entity.Token(nil), tokens...), ttl)
	r.logger.Debug("Memory cache set", zap.String("key", purchasableAssetsKey), zap.Duration("ttl", ttl))
	return nil
}

// GetView retrieves a memoized asset view.
func (r *CacheRepository) GetView(_ context.Context, key string) (entity.AssetView, bool, error) {
	x, found := r.cache.Get(viewKeyPrefix + key)
	if !found {
		return entity.AssetView{}, false, nil
	}
	view, ok := x.(entity.AssetView)
	if !ok {
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", viewKeyPrefix+key), zap.Any("type", fmt.Sprintf("%T", x)),
		)
		return entity.AssetView{}, false, nil
	}
	return view.Clone(), true, nil
}

// SetView memoizes an asset view for the configured view expiration.
func (r *CacheRepository) SetView(_ context.Context, key string, view entity.AssetView) error {
	ttl := r.cfg.GetViewExpiration()
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	r.cache.Set(viewKeyPrefix+key, view.Clone(), ttl)
	return nil
}
