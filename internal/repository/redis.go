package repository

import (
	"context"
	"encoding/json"
	"time"

	"yulebook/internal/config"
	"yulebook/internal/models"

	"github.com/redis/go-redis/v9"
)

const menuCacheKey = "menu:available"

// RedisMenuCache keeps the grouped customer menu in Redis with a TTL so a
// fleet of instances shares one warm copy.
type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisMenuCache(client *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisMenuCache) GetMenu(ctx context.Context) (*models.GroupedMenu, bool) {
	if c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, menuCacheKey).Result()
	if err != nil {
		return nil, false
	}

	var menu models.GroupedMenu
	if err := json.Unmarshal([]byte(val), &menu); err != nil {
		return nil, false
	}
	return &menu, true
}

func (c *RedisMenuCache) SetMenu(ctx context.Context, menu *models.GroupedMenu) error {
	if c.client == nil {
		return redis.ErrClosed
	}

	data, err := json.Marshal(menu)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, menuCacheKey, data, c.ttl).Err()
}

func (c *RedisMenuCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return redis.ErrClosed
	}
	return c.client.Del(ctx, menuCacheKey).Err()
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
