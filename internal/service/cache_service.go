package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ignatzorin/salary-backend/internal/goroutine"
)

// CacheService provides in-memory caching with TTL and invalidation support.
// A zero default TTL disables caching: Remember always computes.
type CacheService struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
	ttl   time.Duration
	now   func() time.Time
	// generation grows on every invalidation; values computed under an older
	// generation are not stored.
	generation uint64
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// NewCacheService creates a new cache service with the given default TTL.
func NewCacheService(ttl time.Duration) *CacheService {
	return &CacheService{
		cache: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Enabled reports whether values are kept at all.
func (cs *CacheService) Enabled() bool {
	return cs.ttl > 0
}

// Get retrieves a value from cache.
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.cache[key]
	if !exists {
		return nil, false
	}

	// Check if expired
	if cs.now().After(entry.expiresAt) {
		// Don't delete here, let cleanup handle it
		return nil, false
	}

	return entry.data, true
}

// setIfGeneration stores the value only if no invalidation happened since gen was read.
func (cs *CacheService) setIfGeneration(gen uint64, key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.generation != gen {
		return
	}
	cs.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: cs.now().Add(ttl),
	}
}

func (cs *CacheService) currentGeneration() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.generation
}

// InvalidateByPrefix removes all keys with the given prefix.
func (cs *CacheService) InvalidateByPrefix(prefix string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.generation++
	for key := range cs.cache {
		if strings.HasPrefix(key, prefix) {
			delete(cs.cache, key)
		}
	}
}

// StartCleanup removes expired entries every interval until ctx is done.
func (cs *CacheService) StartCleanup(ctx context.Context, interval time.Duration) {
	if !cs.Enabled() {
		return
	}
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cs.removeExpired()
			}
		}
	})
}

func (cs *CacheService) removeExpired() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	for key, entry := range cs.cache {
		if now.After(entry.expiresAt) {
			delete(cs.cache, key)
		}
	}
}

// GetOrSet retrieves a value from cache or computes it if not found.
func (cs *CacheService) GetOrSet(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fn func() (interface{}, error),
) (interface{}, error) {
	// Try to get from cache
	if value, found := cs.Get(key); found {
		return value, nil
	}

	// Compute value
	gen := cs.currentGeneration()
	value, err := fn()
	if err != nil {
		return nil, err
	}

	// Store in cache unless it was invalidated while computing
	cs.setIfGeneration(gen, key, value, ttl)

	return value, nil
}

// Remember is GetOrSet with the default TTL.
func (cs *CacheService) Remember(ctx context.Context, key string, fn func() (interface{}, error)) (interface{}, error) {
	return cs.GetOrSet(ctx, key, cs.ttl, fn)
}
