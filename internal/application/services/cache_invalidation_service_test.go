package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/adapters/cache"
	"github.com/zatekoja/travelplanner/internal/application/services"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
)

// fakeEventBus delivers published events to in-process subscribers
type fakeEventBus struct {
	mu          sync.Mutex
	subscribers map[string][]chan *entities.CatalogEvent
	published   []*entities.CatalogEvent
}

func newFakeEventBus() *fakeEventBus {
	return &fakeEventBus{subscribers: make(map[string][]chan *entities.CatalogEvent)}
}

func (b *fakeEventBus) Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	for _, ch := range b.subscribers[channel] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (b *fakeEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan *entities.CatalogEvent, 10)
	b.subscribers[channel] = append(b.subscribers[channel], ch)
	return ch, nil
}

func (b *fakeEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers[channel] {
		close(ch)
	}
	delete(b.subscribers, channel)
	return nil
}

func (b *fakeEventBus) Close() error {
	return nil
}

func (b *fakeEventBus) subscriberCount(channel string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers[channel])
}

func (b *fakeEventBus) publishedEvents() []*entities.CatalogEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*entities.CatalogEvent(nil), b.published...)
}

func TestCacheInvalidationService_Start(t *testing.T) {
	store := cache.NewMemoryAdapter(time.Minute, time.Minute)
	bus := newFakeEventBus()
	service := services.NewCacheInvalidationService(store, bus)

	require.NoError(t, service.Start())
	assert.Equal(t, 1, bus.subscriberCount(providers.EventChannelCatalogUpdates))
	service.Stop()
}

func TestCacheInvalidationService_RegionEventDropsRegionList(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryAdapter(time.Minute, time.Minute)
	bus := newFakeEventBus()
	service := services.NewCacheInvalidationService(store, bus)
	require.NoError(t, service.Start())
	defer service.Stop()

	require.NoError(t, store.Set(ctx, providers.CacheKeyRegionList, []byte(`[]`), 300))

	event := entities.NewCatalogEvent(entities.CatalogEntityRegion, 3, entities.CatalogActionUpdated)
	require.NoError(t, bus.Publish(ctx, providers.EventChannelCatalogUpdates, event))

	assert.Eventually(t, func() bool {
		exists, err := store.Exists(ctx, providers.CacheKeyRegionList)
		return err == nil && !exists
	}, time.Second, 10*time.Millisecond)
}

func TestCacheInvalidationService_IgnoresUncachedEntities(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryAdapter(time.Minute, time.Minute)
	bus := newFakeEventBus()
	service := services.NewCacheInvalidationService(store, bus)
	require.NoError(t, service.Start())
	defer service.Stop()

	require.NoError(t, store.Set(ctx, providers.CacheKeyRegionList, []byte(`[]`), 300))

	event := entities.NewCatalogEvent(entities.CatalogEntityHotel, 8, entities.CatalogActionDeleted)
	require.NoError(t, bus.Publish(ctx, providers.EventChannelCatalogUpdates, event))

	time.Sleep(50 * time.Millisecond)
	exists, err := store.Exists(ctx, providers.CacheKeyRegionList)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCacheInvalidationService_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryAdapter(time.Minute, time.Minute)
	service := services.NewCacheInvalidationService(store, newFakeEventBus())

	require.NoError(t, store.Set(ctx, providers.CacheKeyRegionList, []byte(`[]`), 300))
	require.NoError(t, service.InvalidateAll(ctx))

	exists, err := store.Exists(ctx, providers.CacheKeyRegionList)
	require.NoError(t, err)
	assert.False(t, exists)
}
