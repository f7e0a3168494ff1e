package http

import (
	"context"
	"fmt"

	"github.com/orris-inc/memberhub/internal/infrastructure/auth"
	"github.com/orris-inc/memberhub/internal/infrastructure/cache"
	"github.com/orris-inc/memberhub/internal/infrastructure/permission"
	"github.com/orris-inc/memberhub/internal/infrastructure/pubsub"
	"github.com/orris-inc/memberhub/internal/infrastructure/ratelimit"
	"github.com/orris-inc/memberhub/internal/interfaces/http/middleware"
	sharedDB "github.com/orris-inc/memberhub/internal/shared/db"
	"github.com/orris-inc/memberhub/internal/shared/services/markdown"
)

const loginRateLimitPrefix = "login"

// initInfrastructure connects Redis when enabled and builds the stores,
// auth services, event publisher and middlewares every use case shares.
// Without Redis, sessions and rate limits fall back to process memory and
// stats are computed on every request.
func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.redis = client
		log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())

		c.sessions = cache.NewRedisSessionStore(client)
		c.statsCache = cache.NewRedisStatsCache(client)
		c.limiter = ratelimit.NewRedisRateLimiter(client)
	} else {
		log.Warnw("redis disabled, using in-memory sessions and rate limits")

		c.sessions = cache.NewMemorySessionStore()
		c.statsCache = cache.NopStatsCache{}
		c.limiter = ratelimit.NewMemoryRateLimiter()
	}

	publisher, closer, err := pubsub.NewEventPublisher(&cfg.Events, c.redis, log)
	if err != nil {
		return fmt.Errorf("failed to init event publisher: %w", err)
	}
	c.publisher = publisher
	c.publisherCloser = closer

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to init permission enforcer: %w", err)
	}
	if err := permission.InitAccountingPermissions(enforcer, log); err != nil {
		return fmt.Errorf("failed to seed permission policies: %w", err)
	}
	c.enforcer = enforcer

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
	c.txManager = sharedDB.NewTransactionManager(c.db)
	c.renderer = markdown.NewRenderer()

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.sessions, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.loginRateLimiter = middleware.NewRateLimiter(c.limiter, loginRateLimitPrefix, ratelimit.RateLimitConfig{
		RequestsPerMinute: cfg.Auth.RateLimitPerMin,
	}, log)

	return nil
}
