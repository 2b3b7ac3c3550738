package repository

import (
	"context"
	"sync/atomic"
	"time"

	"yulebook/internal/domain"
	"yulebook/internal/models"

	"github.com/rs/zerolog"
)

// FailoverMenuCache serves from the primary cache (Redis) and falls back to
// the in-memory cache when the primary errors, probing for recovery after a
// minute.
type FailoverMenuCache struct {
	primary   domain.MenuCache
	fallback  domain.MenuCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverMenuCache(primary, fallback domain.MenuCache, logger *zerolog.Logger) *FailoverMenuCache {
	return &FailoverMenuCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverMenuCache) primaryUsable() bool {
	if !c.isDown.Load() {
		return true
	}
	// Probe the primary again after a quiet minute.
	if time.Since(time.Unix(c.lastCheck.Load(), 0)) > time.Minute {
		c.isDown.Store(false)
		return true
	}
	return false
}

func (c *FailoverMenuCache) markDown(err error) {
	c.logger.Error().Err(err).Msg("primary menu cache failed, falling back to memory")
	c.isDown.Store(true)
	c.lastCheck.Store(time.Now().Unix())
}

func (c *FailoverMenuCache) GetMenu(ctx context.Context) (*models.GroupedMenu, bool) {
	if c.primaryUsable() {
		if menu, ok := c.primary.GetMenu(ctx); ok {
			return menu, true
		}
	}
	return c.fallback.GetMenu(ctx)
}

func (c *FailoverMenuCache) SetMenu(ctx context.Context, menu *models.GroupedMenu) error {
	if c.primaryUsable() {
		if err := c.primary.SetMenu(ctx, menu); err != nil {
			c.markDown(err)
		}
	}
	return c.fallback.SetMenu(ctx, menu)
}

func (c *FailoverMenuCache) Invalidate(ctx context.Context) error {
	if c.primaryUsable() {
		if err := c.primary.Invalidate(ctx); err != nil {
			c.markDown(err)
		}
	}
	return c.fallback.Invalidate(ctx)
}
