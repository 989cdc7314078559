package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/analytics"
)

// DashboardCacheService caches assembled dashboard view models in Redis.
// A nil Redis client disables caching entirely; every method becomes a no-op
// so callers never need to branch on cache availability.
type DashboardCacheService struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewDashboardCacheService creates a cache service with the given TTL.
func NewDashboardCacheService(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *DashboardCacheService {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardCacheService{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// cacheKey identifies one (merchant, filter, reference day) view model.
func (s *DashboardCacheService) cacheKey(merchantID string, filter analytics.TimeFilter, referenceDay string) string {
	return fmt.Sprintf("dashboard:vm:%s:%s:%s", merchantID, filter, referenceDay)
}

// Get retrieves a cached view model, returning nil on miss or any cache
// failure. Cache errors are logged, never propagated.
func (s *DashboardCacheService) Get(ctx context.Context, merchantID string, filter analytics.TimeFilter, referenceDay string) (*DashboardViewModel, error) {
	if s.redis == nil {
		return nil, nil
	}

	key := s.cacheKey(merchantID, filter, referenceDay)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		s.logger.Warn("failed to get dashboard from cache", zap.Error(err), zap.String("key", key))
		return nil, nil
	}

	var vm DashboardViewModel
	if err := json.Unmarshal(data, &vm); err != nil {
		s.logger.Warn("failed to unmarshal cached dashboard", zap.Error(err))
		return nil, nil
	}

	s.logger.Debug("cache hit for dashboard", zap.String("merchant_id", merchantID))
	return &vm, nil
}

// Set stores a view model with the configured TTL.
func (s *DashboardCacheService) Set(ctx context.Context, merchantID string, filter analytics.TimeFilter, referenceDay string, vm *DashboardViewModel) error {
	if s.redis == nil {
		return nil
	}

	key := s.cacheKey(merchantID, filter, referenceDay)
	data, err := json.Marshal(vm)
	if err != nil {
		s.logger.Warn("failed to marshal dashboard for cache", zap.Error(err))
		return err
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to set dashboard in cache", zap.Error(err), zap.String("key", key))
		return err
	}

	s.logger.Debug("cached dashboard", zap.String("merchant_id", merchantID), zap.Duration("ttl", s.ttl))
	return nil
}

// Invalidate removes all cached view models for a merchant.
func (s *DashboardCacheService) Invalidate(ctx context.Context, merchantID string) error {
	if s.redis == nil {
		return nil
	}

	pattern := fmt.Sprintf("dashboard:vm:%s:*", merchantID)
	keys, err := s.redis.Keys(ctx, pattern).Result()
	if err != nil {
		s.logger.Warn("failed to find cache keys to invalidate", zap.Error(err))
		return err
	}

	if len(keys) > 0 {
		if err := s.redis.Del(ctx, keys...).Err(); err != nil {
			s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
			return err
		}
		s.logger.Debug("invalidated dashboard cache", zap.String("merchant_id", merchantID), zap.Int("keys_removed", len(keys)))
	}

	return nil
}
