package repository

import (
	"context"
	"sync"
	"time"

	"yulebook/internal/models"
)

// MemoryMenuCache is a process-local menu cache used on its own in small
// deployments and as the fallback behind Redis.
type MemoryMenuCache struct {
	mu        sync.RWMutex
	menu      *models.GroupedMenu
	expiresAt time.Time
	ttl       time.Duration
}

func NewMemoryMenuCache(ttl time.Duration) *MemoryMenuCache {
	return &MemoryMenuCache{ttl: ttl}
}

func (c *MemoryMenuCache) GetMenu(_ context.Context) (*models.GroupedMenu, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.menu == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.menu, true
}

func (c *MemoryMenuCache) SetMenu(_ context.Context, menu *models.GroupedMenu) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.menu = menu
	c.expiresAt = time.Now().Add(c.ttl)
	return nil
}

func (c *MemoryMenuCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.menu = nil
	return nil
}
