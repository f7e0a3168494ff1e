package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/memberhub/internal/infrastructure/permission"
	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers"
	"github.com/orris-inc/memberhub/internal/interfaces/http/middleware"
)

// StatsRouteConfig holds dependencies for dashboard statistics routes.
type StatsRouteConfig struct {
	StatsHandler         *handlers.StatsHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupStatsRoutes configures statistics routes.
func SetupStatsRoutes(engine *gin.Engine, cfg *StatsRouteConfig) {
	stats := engine.Group("/stats")
	stats.Use(cfg.AuthMiddleware.RequireAuth())
	stats.Use(cfg.PermissionMiddleware.RequirePermission(permission.ResourceStats, permission.ActionRead))
	{
		stats.GET("/recharge", cfg.StatsHandler.RechargeStats)
		stats.GET("/member", cfg.StatsHandler.MemberStats)
	}
}
