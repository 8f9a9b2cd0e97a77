package cache

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/config"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// RedisCache кеш поверх redis. Ошибки redis считаются промахом,
// источником истины всегда остается хранилище заказов.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
	prefix string
	ttl    time.Duration
}

func NewRedisCache(logger *slog.Logger, client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger.With(slog.String("cache", prefix)),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "redis get failed", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return data, true
}

// Set с нулевым ttl ничего не пишет, ключи без срока жизни кешу не нужны
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if c.ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, c.key(key), value, c.ttlWithJitter()).Err(); err != nil {
		c.logger.WarnContext(ctx, "redis set failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.logger.WarnContext(ctx, "redis delete failed", slog.String("key", key), slog.Any("error", err))
	}
}

// разброс до 10% чтобы ключи не истекали одновременно
func (c *RedisCache) ttlWithJitter() time.Duration {
	spread := int64(c.ttl / 10)
	if spread <= 0 {
		return c.ttl
	}
	return c.ttl + time.Duration(rand.Int64N(spread))
}

func (c *RedisCache) key(k string) string {
	return c.prefix + ":" + k
}
