package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/zenith-gallery/core/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	defaultRateLimitMax = 50
	rateLimitWindow     = time.Second
	rateLimitPrefix     = "zenith:rate_limit:"
)

// RateLimit enforces a fixed one-second window per client IP. Every caller
// is counted, signed in or not. Redis failures pass through.
func RateLimit(rdb *redis.Client, max int, log *zap.Logger) gin.HandlerFunc {
	if max <= 0 {
		max = defaultRateLimitMax
	}
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := rateLimitKey(ip, time.Now())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limit unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > int64(max) {
			c.Header("Retry-After", strconv.Itoa(int(rateLimitWindow/time.Second)))
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}

func rateLimitKey(ip string, now time.Time) string {
	return fmt.Sprintf("%s%s:%d", rateLimitPrefix, ip, now.Unix())
}
