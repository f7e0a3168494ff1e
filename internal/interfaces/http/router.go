package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/infrastructure/config"
	"github.com/orris-inc/memberhub/internal/interfaces/http/middleware"
	"github.com/orris-inc/memberhub/internal/interfaces/http/routes"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Router owns the gin engine and the dependency container behind it.
type Router struct {
	*Container
	server *http.Server
}

// NewRouter builds the container and an engine with all routes registered.
func NewRouter(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(ctx, db, cfg, log)
	if err != nil {
		return nil, err
	}

	r := &Router{Container: c}
	r.SetupRoutes()
	return r, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.hdlrs.healthHandler.HealthCheck)

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.loginRateLimiter,
	})

	routes.SetupMemberRoutes(r.engine, &routes.MemberRouteConfig{
		MemberHandler:        r.hdlrs.memberHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupPackRoutes(r.engine, &routes.PackRouteConfig{
		PackHandler:          r.hdlrs.packHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupRechargeRoutes(r.engine, &routes.RechargeRouteConfig{
		RechargeHandler:      r.hdlrs.rechargeHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupConsumptionRoutes(r.engine, &routes.ConsumptionRouteConfig{
		ConsumptionHandler:   r.hdlrs.consumptionHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupStatsRoutes(r.engine, &routes.StatsRouteConfig{
		StatsHandler:         r.hdlrs.statsHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server and blocks until it stops. A clean shutdown
// returns nil.
func (r *Router) Run(addr string) error {
	r.server = &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases container resources.
func (r *Router) Shutdown(ctx context.Context) error {
	var err error
	if r.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		err = r.server.Shutdown(shutdownCtx)
	}
	r.Container.Shutdown()
	return err
}
