package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/motorline/dealership-backend/internal/application"
)

// Lua script: atomic INCR + EXPIRE when the key is new.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter is a fixed-window quota check: Max requests per Window per
// caller key, evaluated once per call. The decision carries remaining quota
// and the window reset delay for denied callers.
type RedisLimiter struct {
	Redis  *redis.Client
	Max    int
	Window time.Duration
	Prefix string
}

func NewRedisLimiter(rdb *redis.Client, max int, window time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisLimiter{Redis: rdb, Max: max, Window: window, Prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (application.Decision, error) {
	if l.Redis == nil || l.Max <= 0 || l.Window <= 0 {
		return application.Decision{Allowed: true}, nil
	}

	fullKey := l.Prefix + key
	countI, err := incrExpireScript.Run(ctx, l.Redis, []string{fullKey}, l.Window.Milliseconds()).Result()
	if err != nil {
		return application.Decision{}, err
	}
	count := toInt(countI)

	remaining := l.Max - count
	if remaining < 0 {
		remaining = 0
	}

	if count > l.Max {
		ttl, _ := l.Redis.TTL(ctx, fullKey).Result()
		if ttl < 0 {
			ttl = l.Window
		}
		return application.Decision{
			Allowed:     false,
			RateLimited: true,
			Remaining:   remaining,
			RetryAfter:  ttl,
		}, nil
	}
	return application.Decision{Allowed: true, Remaining: remaining}, nil
}

func toInt(v interface{}) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int:
		return x
	}
	return 0
}

var _ application.DecisionLimiter = (*RedisLimiter)(nil)
