package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

const (
	redisKeyPrefix      = "storefront:cache:"
	redisConnectRetries = 3
	redisConnectBackoff = 500 * time.Millisecond
	redisScanCount      = 100
)

// RedisCache is a [Cache] shared between processes. Expiry is enforced by
// Redis itself.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to cfg.RedisAddress, pinging with a short backoff
// before giving up.
func NewRedisCache(ctx context.Context, cfg config.Cache, log *logger.Logger) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	backoff := retry.WithMaxRetries(redisConnectRetries, retry.NewConstant(redisConnectBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("func", "NewRedisCache").Str("addr", cfg.RedisAddress).Msg("redis ping failed")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = rdb.Close()
		log.Err(err).Str("func", "NewRedisCache").Msg("error connecting redis")
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info().Str("func", "NewRedisCache").Str("addr", cfg.RedisAddress).Msg("connected to redis successfully")

	return NewRedisCacheFromClient(rdb), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(rdb *redis.Client) *RedisCache {
	return &RedisCache{client: rdb, prefix: redisKeyPrefix}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*models.Response, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var resp models.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, fmt.Errorf("decode cached response: %w", err)
	}
	return &resp, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, resp *models.Response, ttl time.Duration) error {
	if resp == nil || ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Clear removes every key under the cache prefix.
func (r *RedisCache) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", redisScanCount).Iterator()

	keys := make([]string, 0, redisScanCount)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Sweep is a no-op: Redis expires keys on its own.
func (r *RedisCache) Sweep(context.Context) (int, error) {
	return 0, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
