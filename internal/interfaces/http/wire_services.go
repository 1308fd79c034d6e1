package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"supportdesk/internal/infrastructure/auth"
	"supportdesk/internal/infrastructure/config"
	"supportdesk/internal/infrastructure/permission"
	"supportdesk/internal/interfaces/http/middleware"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/services/markdown"
)

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	if cfg.Redis.Enabled {
		c.redis = initRedis(cfg, c.log)
	} else {
		c.log.Infow("redis disabled, poll rate limiting is off")
	}

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("casbin"))
	if err != nil {
		return err
	}
	if err := permission.InitTicketPermissions(enforcer); err != nil {
		return err
	}
	c.enforcer = enforcer

	c.renderer = markdown.NewMarkdownService()
	return nil
}

func (c *Container) initMiddlewares() {
	cfg := c.cfg

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)

	// A nil client turns the limiter into a pass-through.
	var limiterClient redis.Cmdable
	if c.redis != nil {
		limiterClient = c.redis
	}
	c.rateLimiter = middleware.NewRateLimiter(
		limiterClient,
		cfg.RateLimit.PollLimit,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		c.log,
	)
}

// initRedis creates the Redis client. An unreachable server is logged and
// tolerated; the rate limiter fails open.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis", "addr", cfg.Redis.GetAddr(), "error", err)
		return redisClient
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient
}

func closeRedis(client *redis.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}
