package adapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

// NewCache builds the cache backend selected by cfg. It returns nil when
// caching is disabled.
func NewCache(ctx context.Context, cfg config.Cache, log *logger.Logger) (Cache, error) {
	if cfg.Disabled {
		return nil, nil
	}

	switch cfg.Backend {
	case config.CacheBackendRedis:
		return NewRedisCache(ctx, cfg, log)
	case config.CacheBackendMemory, "":
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

type cacheEntry struct {
	resp      models.Response
	expiresAt time.Time
}

// MemoryCache is an in-process [Cache]. Expired entries are dropped lazily on
// read and in bulk by Sweep.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns a copy of the live entry for key.
func (m *MemoryCache) Get(_ context.Context, key string) (*models.Response, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}

	return cloneResponse(&entry.resp), true, nil
}

// Set stores resp for ttl. A non-positive ttl stores nothing.
func (m *MemoryCache) Set(_ context.Context, key string, resp *models.Response, ttl time.Duration) error {
	if resp == nil || ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = cacheEntry{
		resp:      *cloneResponse(resp),
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Delete drops key.
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Clear drops every entry.
func (m *MemoryCache) Clear(_ context.Context) error {
	m.mu.Lock()
	clear(m.entries)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryCache) Sweep(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func cloneResponse(r *models.Response) *models.Response {
	cp := *r
	cp.Cached = false
	if r.Data != nil {
		cp.Data = append([]byte(nil), r.Data...)
	}
	return &cp
}
