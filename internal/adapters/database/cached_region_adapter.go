package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
	"github.com/zatekoja/travelplanner/internal/domain/repositories"
	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
)

// CachedRegionAdapter wraps a RegionRepository and caches the full list.
// Writes drop the cached list before returning.
type CachedRegionAdapter struct {
	adapter repositories.RegionRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
	ttl     int
}

// NewCachedRegionAdapter creates a new cached region adapter
func NewCachedRegionAdapter(adapter repositories.RegionRepository, cache providers.CacheProvider, metrics *observability.Metrics, ttlSeconds int) repositories.RegionRepository {
	return &CachedRegionAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
		ttl:     ttlSeconds,
	}
}

// List returns the cached region list, loading it on a miss
func (a *CachedRegionAdapter) List(ctx context.Context) ([]*entities.Region, error) {
	cached, err := a.cache.Get(ctx, providers.CacheKeyRegionList)
	if err == nil {
		var regions []*entities.Region
		decodeErr := json.Unmarshal(cached, &regions)
		if decodeErr == nil {
			observability.RecordCacheHit(ctx, a.metrics, providers.CacheKeyRegionList)
			return regions, nil
		}
		log.Warn().Err(decodeErr).Str("key", providers.CacheKeyRegionList).Msg("Failed to decode cached regions")
	} else if !errors.Is(err, providers.ErrCacheMiss) {
		log.Warn().Err(err).Str("key", providers.CacheKeyRegionList).Msg("Region cache read failed")
	}
	observability.RecordCacheMiss(ctx, a.metrics, providers.CacheKeyRegionList)

	regions, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(regions); err == nil {
		if err := a.cache.Set(ctx, providers.CacheKeyRegionList, data, a.ttl); err != nil {
			log.Warn().Err(err).Str("key", providers.CacheKeyRegionList).Msg("Failed to cache regions")
		}
	}
	return regions, nil
}

// GetByID is not cached
func (a *CachedRegionAdapter) GetByID(ctx context.Context, id int64) (*entities.Region, error) {
	return a.adapter.GetByID(ctx, id)
}

// Create creates a region and drops the cached list
func (a *CachedRegionAdapter) Create(ctx context.Context, region *entities.Region) error {
	if err := a.adapter.Create(ctx, region); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

// Update updates a region and drops the cached list
func (a *CachedRegionAdapter) Update(ctx context.Context, region *entities.Region) error {
	if err := a.adapter.Update(ctx, region); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

// Delete deletes a region and drops the cached list
func (a *CachedRegionAdapter) Delete(ctx context.Context, id int64) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

func (a *CachedRegionAdapter) invalidate(ctx context.Context) {
	if err := a.cache.Delete(ctx, providers.CacheKeyRegionList); err != nil {
		log.Warn().Err(err).Str("key", providers.CacheKeyRegionList).Msg("Failed to invalidate region cache")
	}
}
