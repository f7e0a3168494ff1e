package http

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/domain/shared/events"
	"github.com/orris-inc/memberhub/internal/infrastructure/auth"
	"github.com/orris-inc/memberhub/internal/infrastructure/cache"
	"github.com/orris-inc/memberhub/internal/infrastructure/config"
	"github.com/orris-inc/memberhub/internal/infrastructure/permission"
	"github.com/orris-inc/memberhub/internal/infrastructure/ratelimit"
	"github.com/orris-inc/memberhub/internal/interfaces/http/middleware"
	sharedDB "github.com/orris-inc/memberhub/internal/shared/db"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/services/markdown"
)

// Container holds infrastructure components, repositories, use cases and
// handlers. It wires everything together and releases broker and cache
// connections on Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	loginRateLimiter     *middleware.RateLimiter

	// Shared services
	jwtSvc          *auth.JWTService
	hasher          *auth.BcryptPasswordHasher
	enforcer        *permission.Enforcer
	sessions        cache.SessionStore
	statsCache      cache.StatsCache
	limiter         ratelimit.RateLimiter
	txManager       *sharedDB.TransactionManager
	renderer        markdown.Renderer
	publisher       events.EventPublisher
	publisherCloser io.Closer
}

// NewContainer builds the full dependency graph on top of an open database.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}

	c.repos = newRepositories(db, log)
	c.ucs = c.newUseCases()

	hdlrs, err := c.newHandlers()
	if err != nil {
		c.Shutdown()
		return nil, err
	}
	c.hdlrs = hdlrs

	return c, nil
}

// Shutdown closes the event publisher and the Redis client.
func (c *Container) Shutdown() {
	if c.publisherCloser != nil {
		if err := c.publisherCloser.Close(); err != nil {
			c.log.Warnw("failed to close event publisher", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
