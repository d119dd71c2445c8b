package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
)

// CacheWarmingService preloads data the itinerary path reads on every request
type CacheWarmingService struct {
	regions repositories.RegionRepository
	cache   providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service. regions should
// be the cached repository so that listing fills the cache.
func NewCacheWarmingService(regions repositories.RegionRepository, cache providers.CacheProvider) *CacheWarmingService {
	return &CacheWarmingService{
		regions: regions,
		cache:   cache,
	}
}

// WarmCache loads the region list through the cache
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	regions, err := s.regions.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to warm region list: %w", err)
	}
	log.Info().Int("regions", len(regions)).Msg("Cache warmed")
	return nil
}

// CacheStats reports which warmed keys are currently present
func (s *CacheWarmingService) CacheStats(ctx context.Context) (map[string]interface{}, error) {
	keys := []string{providers.CacheKeyRegionList}
	stats := make(map[string]interface{}, len(keys)+1)

	cached := 0
	for _, key := range keys {
		exists, err := s.cache.Exists(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", key, err)
		}
		stats[key] = exists
		if exists {
			cached++
		}
	}
	stats["cached_keys"] = cached
	return stats, nil
}
