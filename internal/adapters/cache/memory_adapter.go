package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/zatekoja/travelplanner/internal/domain/providers"
)

// MemoryAdapter implements CacheProvider in process. It is used when Redis is unavailable.
type MemoryAdapter struct {
	store *gocache.Cache
}

// NewMemoryAdapter creates an in-process cache swept every cleanupInterval
func NewMemoryAdapter(defaultTTL, cleanupInterval time.Duration) providers.CacheProvider {
	return &MemoryAdapter{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := a.store.Get(key)
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	data, ok := value.([]byte)
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return data, nil
}

// Set stores a copy of value. Zero expiration uses the adapter default.
func (a *MemoryAdapter) Set(_ context.Context, key string, value []byte, expirationSeconds int) error {
	expiration := gocache.DefaultExpiration
	if expirationSeconds > 0 {
		expiration = time.Duration(expirationSeconds) * time.Second
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	a.store.Set(key, stored, expiration)
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(_ context.Context, key string) error {
	a.store.Delete(key)
	return nil
}

// Exists checks if a key exists in cache
func (a *MemoryAdapter) Exists(_ context.Context, key string) (bool, error) {
	_, ok := a.store.Get(key)
	return ok, nil
}
