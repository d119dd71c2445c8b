package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
)

// cacheKeysByEntity lists the cache keys a write to each catalog entity makes stale
var cacheKeysByEntity = map[entities.CatalogEntity][]string{
	entities.CatalogEntityRegion: {providers.CacheKeyRegionList},
}

// CacheInvalidationService drops cached catalog data when another instance
// announces a write on the catalog channel.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins listening for catalog events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelCatalogUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to catalog updates: %w", err)
	}

	s.started = true
	go s.processEvents(eventChan)
	log.Info().Str("channel", providers.EventChannelCatalogUpdates).Msg("Cache invalidation service started")
	return nil
}

// Stop stops the service and waits for the event loop to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	if s.started {
		<-s.done
	}
	log.Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.CatalogEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.CatalogEvent) {
	keys := cacheKeysByEntity[event.Entity]
	if len(keys) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Str("event_id", event.ID).Msg("Failed to invalidate cache")
			continue
		}
		log.Debug().
			Str("key", key).
			Str("entity", string(event.Entity)).
			Int64("entity_id", event.EntityID).
			Str("action", string(event.Action)).
			Msg("Invalidated cache")
	}
}

// InvalidateAll drops every catalog cache key. Used after bulk loads.
func (s *CacheInvalidationService) InvalidateAll(ctx context.Context) error {
	for _, keys := range cacheKeysByEntity {
		for _, key := range keys {
			if err := s.cache.Delete(ctx, key); err != nil {
				return fmt.Errorf("failed to invalidate %s: %w", key, err)
			}
		}
	}
	return nil
}
