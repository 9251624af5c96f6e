package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimit is a fixed-window counter keyed by client IP and backed by
// redis, so the limit holds across server processes. It guards the webhook
// endpoint, whose evidence insert happens before signature verification and
// would otherwise be an unthrottled unauthenticated write path.
func RateLimit(rdb *redis.Client, name string, max int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.IP())

		count, err := rdb.Incr(c.Context(), key).Result()
		if err != nil {
			// Redis being down must not take the endpoint with it.
			log.Printf("rate limiter unavailable: %v", err)
			return c.Next()
		}
		if count == 1 {
			rdb.Expire(c.Context(), key, window)
		}

		if count > int64(max) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, please try again later",
			})
		}
		return c.Next()
	}
}
