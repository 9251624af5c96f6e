package repositories

import (
	"kobopay/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to redis using environment configuration. Redis
// backs the webhook rate limiter only; balance state is never cached.
func NewRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.GetEnv("REDIS_HOST", "localhost") + ":" + config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
}
