package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"supportdesk/internal/shared/constants"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/utils"
)

// RateLimiter is a Redis fixed-window counter for the poll endpoints, keyed by
// caller id when authenticated and by client IP otherwise.
type RateLimiter struct {
	redisClient redis.Cmdable
	limit       int
	window      time.Duration
	logger      logger.Interface
}

func NewRateLimiter(redisClient redis.Cmdable, limit int, window time.Duration, log logger.Interface) *RateLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RateLimiter{
		redisClient: redisClient,
		limit:       limit,
		window:      window,
		logger:      log,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redisClient == nil || rl.limit <= 0 {
			c.Next()
			return
		}

		subject := "ip:" + c.ClientIP()
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			subject = fmt.Sprintf("user:%v", userID)
		}
		windowBucket := time.Now().Unix() / int64(rl.window.Seconds())
		key := fmt.Sprintf("supportdesk:ratelimit:%s:%d", subject, windowBucket)

		ctx := c.Request.Context()
		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			// fail open
			rl.logger.Debugw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			rl.redisClient.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
