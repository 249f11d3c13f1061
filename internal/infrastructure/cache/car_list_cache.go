package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/pkg/helpers"
)

const carListKey = "cars:admin:list"

// CarListCache keeps the unfiltered admin car list in Redis. Reads and
// writes degrade to the database silently; only invalidation failures are
// reported so a stale list is never served unnoticed.
type CarListCache struct {
	Redis  *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewCarListCache(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *CarListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CarListCache{Redis: rdb, TTL: ttl, Logger: logger}
}

func (c *CarListCache) Get(ctx context.Context) ([]entity.Car, bool) {
	var cars []entity.Car
	ok, err := helpers.RedisGetJSON(ctx, c.Redis, carListKey, &cars)
	if err != nil {
		c.Logger.WithError(err).Warn("car list cache read failed")
		return nil, false
	}
	return cars, ok
}

func (c *CarListCache) Set(ctx context.Context, cars []entity.Car) {
	if err := helpers.RedisSetJSON(ctx, c.Redis, carListKey, cars, c.TTL); err != nil {
		c.Logger.WithError(err).Warn("car list cache write failed")
	}
}

func (c *CarListCache) Invalidate(ctx context.Context) error {
	return helpers.RedisDel(ctx, c.Redis, carListKey)
}
