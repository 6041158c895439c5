package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter applies a fixed-window per-IP limit, backed by redis. Meant
// for the OTP-sending endpoints, which are the abuse magnets; everything
// else is already throttled by the cooldown policy in the ledgers.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Limit returns the middleware for one route, keyed by route name + IP.
// On redis failure the request is let through: delivery throttling must not
// take the API down with it.
func (rl *RateLimiter) Limit(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s:%d", route, c.ClientIP(), time.Now().Unix()/int64(rl.window.Seconds()))

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("[ratelimit] redis incr failed, allowing request: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
				log.Printf("[ratelimit] redis expire failed: %v", err)
			}
		}

		if count > int64(rl.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded, try again later",
			})
			return
		}
		c.Next()
	}
}
