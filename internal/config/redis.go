package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisLimiterTimeout bounds every Redis round trip the rate limiter makes
// on the request path.
const redisLimiterTimeout = 200 * time.Millisecond

// RedisOptions describes the Redis server shared by the rate limiter
// replicas.  REDIS_URL (redis:// or rediss:// for TLS) wins over
// REDIS_ADDR/REDIS_PASSWORD.  ok is false when REDIS_DISABLED is set.
func RedisOptions() (opts *redis.Options, ok bool, err error) {
	if envBool("REDIS_DISABLED", false) {
		return nil, false, nil
	}
	if u := getenv("REDIS_URL", ""); u != "" {
		opts, err = redis.ParseURL(u)
		if err != nil {
			return nil, false, err
		}
	} else {
		opts = &redis.Options{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: getenv("REDIS_PASSWORD", ""),
		}
	}
	opts.DialTimeout = redisLimiterTimeout
	opts.ReadTimeout = redisLimiterTimeout
	opts.WriteTimeout = redisLimiterTimeout
	opts.MaxRetries = -1
	return opts, true, nil
}

// NewRedisClient connects to the limiter's Redis.  It returns nil when Redis
// is disabled, misconfigured or unreachable at startup; the limiter then
// runs in-process.
func NewRedisClient() *redis.Client {
	opts, ok, err := RedisOptions()
	if err != nil || !ok {
		return nil
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
