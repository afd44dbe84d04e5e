// cache — опциональный read-through кэш refresh-токенов поверх Redis.
//
// Кэш хранит только отображение token -> user_id и не является источником
// истины: промах всегда ведёт к запросу в БД. Семантика refresh-операции
// при отключённом кэше не меняется.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshCache — минимальный контракт кэша refresh-токенов.
type RefreshCache interface {
	// Get возвращает user_id и признак наличия токена в кэше.
	Get(ctx context.Context, token string) (int64, bool, error)
	// Set сохраняет владельца токена с TTL.
	Set(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "catalog:rt:".
func NewRedisCache(redisURL, prefix string) (RefreshCache, error) {
	if prefix == "" {
		prefix = "catalog:rt:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(token string) string { return c.prefix + token }

func (c *redisCache) Get(ctx context.Context, token string) (int64, bool, error) {
	v, err := c.rdb.Get(ctx, c.key(token)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	uid, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, err
	}

	return uid, true, nil
}

func (c *redisCache) Set(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.key(token), strconv.FormatInt(userID, 10), ttl).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
