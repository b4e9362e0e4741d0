package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
)

// MemoryCache is the single-process cache backend. TTL semantics match the
// Redis one so the two are interchangeable.
type MemoryCache struct {
	m        sync.RWMutex
	products []domain.Product
	expires  time.Time
	ttl      time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &MemoryCache{ttl: ttl}
}

func (c *MemoryCache) Get(context.Context) ([]domain.Product, error) {
	c.m.RLock()
	defer c.m.RUnlock()
	if c.products == nil || time.Now().After(c.expires) {
		return nil, ErrCacheMiss
	}
	return c.products, nil
}

func (c *MemoryCache) Set(_ context.Context, products []domain.Product) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.products = products
	c.expires = time.Now().Add(c.ttl)
	return nil
}

func (c *MemoryCache) Delete(context.Context) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.products = nil
	return nil
}
